package history

import "strings"

func record(name, email, date, title, body, hash string, diffs ...string) string {
	meta := strings.Join([]string{name, email, date, title, body + "\n", hash}, Delimiter)
	if len(diffs) == 0 {
		return meta
	}
	return meta + "\n\n" + strings.Join(diffs, "")
}

const parserDiff = "diff --git a/parse.go b/parse.go\n" +
	"--- a/parse.go\n" +
	"+++ b/parse.go\n" +
	"@@ -1,2 +1,2 @@ package parse\n" +
	" package parse\n" +
	"-func old() {}\n" +
	"+func Parse() {}\n"

const readmeDiff = "diff --git a/README.md b/README.md\n" +
	"--- a/README.md\n" +
	"+++ b/README.md\n" +
	"@@ -1 +1,2 @@\n" +
	" # parse\n" +
	"+Parses things.\n"

const lockfileDiff = "diff --git a/go.sum b/go.sum\n" +
	"--- a/go.sum\n" +
	"+++ b/go.sum\n" +
	"@@ -1 +1 @@\n" +
	"-example.com/a v1.0.0 h1:old\n" +
	"+example.com/a v1.1.0 h1:new\n"

// Diff lines that look like log metadata.
const delimitedDiff = "diff --git a/data.txt b/data.txt\n" +
	"--- a/data.txt\n" +
	"+++ b/data.txt\n" +
	"@@ -1 +1 @@\n" +
	"-old|||a|||b\n" +
	"+new|||a\n"

const metadataLikeDiff = "diff --git a/fixtures.txt b/fixtures.txt\n" +
	"--- a/fixtures.txt\n" +
	"+++ b/fixtures.txt\n" +
	"@@ -1 +1,2 @@\n" +
	" keep\n" +
	"+Ada|||ada@x|||Sun, 1 Jan 2023 12:00:00 +0000|||t|||b|||zzz\n"

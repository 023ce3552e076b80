package app

import "github.com/spf13/pflag"

// RegisterFlags registers the flags shared by all commands on the given FlagSet
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("api-key", "", "Language model API key (also read from OPENAI_API_KEY)")
	flags.StringP("model", "m", "", "Language model used to classify queries")
	flags.String("llm-base-url", "", "Base URL of the OpenAI-compatible completion API")
	flags.Duration("llm-timeout", 0, "Timeout of a single classification request")
	flags.BoolP("disable-classifications", "D", false, "Do not derive author and date filters from the query")
	flags.IntP("max-results", "n", 0, "Maximum results per ranking pass")
	flags.Float64("bm25-k1", 0, "BM25 term frequency saturation")
	flags.Float64("bm25-b", 0, "BM25 length normalization")
	flags.Int("history-threshold", 0, "Commit count above which only recent history is searched")
	flags.String("history-since", "", "History window applied to large repositories")
	flags.Int("issue-limit", 0, "Maximum number of issues fetched")
	flags.StringP("log-level", "l", "", "Log level: debug, info, warn or error")
}

// RegisterSearchFlags registers the flags of the search command
func RegisterSearchFlags(flags *pflag.FlagSet) {
	RegisterFlags(flags)
	flags.StringP("query", "q", "", "Search query (positional arguments are used when empty)")
	flags.BoolP("issues-only", "i", false, "Search GitHub issues only")
	flags.BoolP("issues-too", "I", false, "Search GitHub issues in addition to commits")
	flags.BoolP("include-code-patches", "p", false, "Also rank commits by the code they added")
	flags.BoolP("search-all", "a", false, "Search the full history of large repositories")
	flags.String("color", "", "Color output: auto, always or never")
}

// RegisterServeFlags registers the flags of the serve command
func RegisterServeFlags(flags *pflag.FlagSet) {
	RegisterFlags(flags)
	flags.StringP("transport", "t", "", "Transport type: stdio or sse")
	flags.StringP("host", "H", "", "Host for SSE transport")
	flags.IntP("port", "p", 0, "Port for SSE transport")
	flags.StringP("auth-type", "a", "", "Authentication type: none, basic, or apikey")
	flags.StringP("auth-basic-username", "u", "", "Basic auth username")
	flags.StringP("auth-basic-password", "P", "", "Basic auth password")
	flags.StringSliceP("auth-api-keys", "k", nil, "API keys (comma-separated)")
}

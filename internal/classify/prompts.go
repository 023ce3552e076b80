package classify

const baseContextPrompt = `# General Context
You are a git and GitHub search assistant. The specific task to complete is explained below. You must follow the instructions.
`

const binaryClassificationPrompt = `# Task
You will be given a user query, an instruction, and a tool call output format to follow.

Your job is to read the relevant context, submit your answer to the instruction in the tool call format.`

const (
	toolName              = "binary_classification"
	classificationField   = "classification"
	classificationDesc    = "The binary classification derived from the context and instruction"
	conditionalDescSuffix = " (if classification == true)"
)

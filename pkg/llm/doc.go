// Package llm talks to the text completion service.
//
// [Client] sends prompts to an OpenAI-compatible completions endpoint and
// returns the text of the first choice. It never retries: a failed call is
// reported to the caller, which decides whether to degrade to an empty
// result.
//
// The package also owns the prompts that ask the model for relation triplets
// ([TextToGraphPrompt]) and for a follow-up explanation ([ExplainPrompt]),
// and the sentinel responses a front end substitutes for model output when
// no usable text exists ([IsSentinel]).
package llm

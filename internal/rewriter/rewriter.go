package rewriter

import "context"

// Rewriter rewrites learner text according to a fixed instruction.
// Implementations may call an LLM or return canned results (for tests).
// The engine must work with a nil Rewriter: its output is advisory and
// never required for a response.
type Rewriter interface {
	// Rewrite returns a rewritten version of text, or an error when the
	// backend is unreachable or produced an unusable response.
	Rewrite(ctx context.Context, text string, instruction Instruction) (string, error)
}

// Instruction is one of a fixed small set of rewrite requests.
type Instruction string

// InstructionCorrectGrammar asks for a grammatically corrected version of
// the text with the meaning preserved.
const InstructionCorrectGrammar Instruction = "correct grammar"

// RephraseTo asks for the text restated in the given tone
// ("formal", "casual", ...).
func RephraseTo(tone string) Instruction {
	return Instruction("rephrase to " + tone)
}

// SimplifyTo asks for the text rewritten for the given CEFR band.
func SimplifyTo(band string) Instruction {
	return Instruction("simplify to " + band)
}

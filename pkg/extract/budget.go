package extract

import (
	"github.com/pkoukk/tiktoken-go"

	"github.com/caseatlas/caseatlas/pkg/constants"
	"github.com/caseatlas/caseatlas/pkg/errors"
)

// TokenCounter estimates the token cost of a prompt. Estimates only
// gate the budget guard; backends do their own exact accounting.
type TokenCounter interface {
	Count(text string) int
}

// TiktokenCounter counts tokens with the cl100k_base encoding.
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenCounter creates a counter for the cl100k_base encoding.
func NewTiktokenCounter() (*TiktokenCounter, error) {
	encoding, err := tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
	if err != nil {
		return nil, &errors.ConfigError{Component: "tokenizer", Message: "loading cl100k_base encoding", Err: err}
	}
	return &TiktokenCounter{encoding: encoding}, nil
}

// Count implements the TokenCounter interface.
func (c *TiktokenCounter) Count(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}

// BudgetGuard rejects prompts that would not leave a workable
// completion budget under the configured token ceiling. A rejected
// prompt never reaches a backend and is never retried.
type BudgetGuard struct {
	counter    TokenCounter
	tokenLimit int
}

// NewBudgetGuard creates a guard over the given counter and ceiling.
// A non-positive ceiling selects the default.
func NewBudgetGuard(counter TokenCounter, tokenLimit int) *BudgetGuard {
	if tokenLimit <= 0 {
		tokenLimit = constants.DefaultTokenLimit
	}
	return &BudgetGuard{counter: counter, tokenLimit: tokenLimit}
}

// Check estimates the prompt cost and returns the completion budget for
// the call. Fails with a BudgetError when the remaining budget, after
// the safety margin, falls below the minimum threshold.
func (g *BudgetGuard) Check(prompt string) (int, error) {
	promptTokens := g.counter.Count(prompt)

	remaining := g.tokenLimit - promptTokens - constants.BudgetSafetyMargin
	if remaining > constants.MaxCompletionTokens {
		remaining = constants.MaxCompletionTokens
	}

	if remaining < constants.MinCompletionTokens {
		return 0, &errors.BudgetError{
			PromptTokens: promptTokens,
			TokenLimit:   g.tokenLimit,
			Remaining:    remaining,
		}
	}

	return remaining, nil
}

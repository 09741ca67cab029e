// Package detector runs the grammar rule battery over single sentences and
// optionally asks the rephrasing collaborator for an alternative correction.
package detector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edulingua/backend/internal/domain/analysis"
	"github.com/edulingua/backend/internal/rewriter"
	"github.com/edulingua/backend/internal/rules"
)

// Result is the output of detecting one sentence.
type Result struct {
	Corrected    string
	Records      []analysis.ErrorRecord
	AISuggestion string // set only when the collaborator produced a different correction
	Degraded     bool   // collaborator was configured but failed
}

// Detector applies the rule battery in its fixed order. The optional
// rewriter only ever adds an alternative suggestion; its absence or
// failure never changes which errors are found or how they are ordered.
type Detector struct {
	battery  []rules.Rule
	rewriter rewriter.Rewriter // nil when not configured
	timeout  time.Duration
	logger   *slog.Logger
}

// New creates a Detector. rw may be nil for rule-only operation.
func New(rw rewriter.Rewriter, timeout time.Duration, logger *slog.Logger) *Detector {
	return &Detector{
		battery:  rules.Battery(),
		rewriter: rw,
		timeout:  timeout,
		logger:   logger,
	}
}

// edit is one contiguous replacement a rule made, in the coordinates of
// the sentence it was applied to. Every non-restructuring rule changes
// exactly one region, so the chain of edits fully describes how positions
// in the working sentence relate back to the original.
type edit struct {
	pos    int
	oldLen int
	newLen int
}

// Detect corrects one trimmed sentence. offset is the byte position of the
// sentence within the full submission, so records carry absolute spans.
// A *analysis.FaultError return means a rule emitted a malformed span;
// the caller must abort the request.
func (d *Detector) Detect(ctx context.Context, sentence string, offset int) (Result, error) {
	original := sentence
	current := sentence
	var edits []edit
	var records []analysis.ErrorRecord

	for _, rule := range d.battery {
		finding := rule.Detect(rules.NewSentence(current, offset))
		if finding == nil {
			continue
		}
		// Spans are validated against the sentence the rule actually
		// inspected, which earlier corrections may have lengthened.
		if err := checkSpan(rule.ID(), finding.Record.Span, offset, offset+len(current)); err != nil {
			return Result{}, err
		}

		rec := finding.Record
		// Rules after a correction see the corrected sentence; undo the
		// edit chain so the record's span points into the original
		// submission. A position swallowed by an earlier edit has no home
		// there, so the record is dropped rather than guessed at.
		start, end, ok := mapSpan(rec.Span.Start-offset, rec.Span.End-offset, edits, len(original))
		if ok {
			rec.Span = analysis.Span{Start: offset + start, End: offset + end}
			rec.SurfaceText = original[start:end]
			records = append(records, rec)
		}

		if finding.Restructured {
			current = finding.Corrected
			break
		}
		edits = append(edits, diffEdit(current, finding.Corrected))
		current = finding.Corrected
	}

	res := Result{
		Corrected: current,
		Records:   analysis.SortAndMerge(records),
	}

	if d.rewriter != nil {
		res.AISuggestion, res.Degraded = d.askRewriter(ctx, original, res.Corrected)
	}
	return res, nil
}

// askRewriter requests one alternative correction. Any failure downgrades
// to rule-only output; nothing propagates to the caller.
func (d *Detector) askRewriter(ctx context.Context, original, ruleCorrected string) (suggestion string, degraded bool) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	alt, err := d.rewriter.Rewrite(ctx, original, rewriter.InstructionCorrectGrammar)
	if err != nil {
		d.logger.Warn("rewriter unavailable, continuing rule-only",
			"error", err,
		)
		return "", true
	}
	if alt == ruleCorrected || alt == original {
		return "", false
	}
	return alt, false
}

func checkSpan(ruleID string, span analysis.Span, min, max int) error {
	if span.Start < min || span.End <= span.Start || span.End > max {
		return &analysis.FaultError{
			Op:     "detect",
			Detail: fmt.Sprintf("rule %s emitted span [%d,%d) outside sentence [%d,%d)", ruleID, span.Start, span.End, min, max),
		}
	}
	return nil
}

// diffEdit locates the single region where after differs from before as
// the remainder between their common prefix and common suffix.
func diffEdit(before, after string) edit {
	p := 0
	for p < len(before) && p < len(after) && before[p] == after[p] {
		p++
	}
	s := 0
	for s < len(before)-p && s < len(after)-p && before[len(before)-1-s] == after[len(after)-1-s] {
		s++
	}
	return edit{pos: p, oldLen: len(before) - p - s, newLen: len(after) - p - s}
}

// mapSpan translates a half-open span in the working sentence back to the
// original sentence by undoing the edit chain newest first. It reports
// false when a boundary fell inside a replaced region or the mapped span
// is degenerate.
func mapSpan(start, end int, edits []edit, originalLen int) (int, int, bool) {
	for i := len(edits) - 1; i >= 0; i-- {
		var ok bool
		if start, ok = mapPos(start, edits[i]); !ok {
			return 0, 0, false
		}
		if end, ok = mapPos(end, edits[i]); !ok {
			return 0, 0, false
		}
	}
	if start < 0 || end <= start || end > originalLen {
		return 0, 0, false
	}
	return start, end, true
}

// mapPos undoes one edit for a single boundary position.
func mapPos(p int, e edit) (int, bool) {
	switch {
	case p <= e.pos:
		return p, true
	case p >= e.pos+e.newLen:
		return p - (e.newLen - e.oldLen), true
	default:
		return 0, false
	}
}

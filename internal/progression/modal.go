package progression

import (
	"context"

	"github.com/abhisek/mathquest/internal/stages"
)

func (c *Controller) openDialogue(lines []stages.DialogueLine, next Continuation) {
	c.dialogue = lines
	c.dialogueIdx = 0
	c.pending = next
}

// DialogueLine returns the line on screen, or false when no dialogue is
// open.
func (c *Controller) DialogueLine() (stages.DialogueLine, bool) {
	if !c.modalOpen() {
		return stages.DialogueLine{}, false
	}
	return c.dialogue[c.dialogueIdx], true
}

// AdvanceDialogue moves to the next line, closing the dialogue and running
// its continuation after the last one.
func (c *Controller) AdvanceDialogue(ctx context.Context) bool {
	if !c.modalOpen() {
		return false
	}
	c.dialogueIdx++
	if c.dialogueIdx >= len(c.dialogue) {
		c.closeDialogue(ctx)
	}
	return true
}

// SkipDialogue closes the dialogue and runs its continuation.
func (c *Controller) SkipDialogue(ctx context.Context) bool {
	if !c.modalOpen() {
		return false
	}
	c.closeDialogue(ctx)
	return true
}

func (c *Controller) closeDialogue(ctx context.Context) {
	next := c.pending
	c.dialogue, c.dialogueIdx = nil, 0
	c.pending = Continuation{}
	c.resolve(ctx, next)
}

func (c *Controller) startCutscene(ctx context.Context, frames stages.Cutscene, next Continuation) {
	c.setScreen(ctx, ScreenCutscene)
	c.cutscene = frames
	c.cutsceneIdx = 0
	c.pending = next
}

// CutsceneFrame returns the frame on screen and its index.
func (c *Controller) CutsceneFrame() (stages.Frame, int, bool) {
	if c.screen != ScreenCutscene || c.cutsceneIdx >= len(c.cutscene) {
		return stages.Frame{}, 0, false
	}
	return c.cutscene[c.cutsceneIdx], c.cutsceneIdx, true
}

// AdvanceCutscene moves to the next frame, running the continuation after
// the last one.
func (c *Controller) AdvanceCutscene(ctx context.Context) bool {
	if c.screen != ScreenCutscene {
		return false
	}
	c.cutsceneIdx++
	if c.cutsceneIdx >= len(c.cutscene) {
		c.endCutscene(ctx)
	}
	return true
}

// AdvanceCutsceneFrom advances only if frame is still on screen. Auto
// advance timers use it so a late timer cannot skip a frame.
func (c *Controller) AdvanceCutsceneFrom(ctx context.Context, frame int) bool {
	if c.screen != ScreenCutscene || c.cutsceneIdx != frame {
		return false
	}
	return c.AdvanceCutscene(ctx)
}

// SkipCutscene ends the cutscene and runs its continuation.
func (c *Controller) SkipCutscene(ctx context.Context) bool {
	if c.screen != ScreenCutscene {
		return false
	}
	c.endCutscene(ctx)
	return true
}

func (c *Controller) endCutscene(ctx context.Context) {
	next := c.pending
	c.pending = Continuation{}
	if next.Kind == ContinueNone {
		next.Kind = ContinueToMap
	}
	c.resolve(ctx, next)
}

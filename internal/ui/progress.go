package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// StageBar shows which pipeline stage is running. The zero value and a nil
// *StageBar are silent.
type StageBar struct {
	bar     *progressbar.ProgressBar
	started bool
}

// NewStageBar creates a progress bar with one step per stage
func NewStageBar(stages int) *StageBar {
	bar := progressbar.NewOptions(stages,
		progressbar.OptionSetDescription(color.CyanString("Selecting tests: ")),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &StageBar{bar: bar}
}

// Stage marks the previous stage done and shows name as running
func (s *StageBar) Stage(name string) {
	if s == nil || s.bar == nil {
		return
	}
	if s.started {
		_ = s.bar.Add(1)
	}
	s.started = true
	s.bar.Describe(color.CyanString("Selecting tests: ") + color.YellowString("%-8s", name))
}

// Finish completes the progress bar
func (s *StageBar) Finish() {
	if s == nil || s.bar == nil {
		return
	}
	s.bar.Describe(color.CyanString("Selecting tests: ") + color.GreenString("%-8s", "done"))
	_ = s.bar.Finish()
}

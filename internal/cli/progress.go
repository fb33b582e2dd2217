package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/cxp-platform/cxp-cli/internal/iam"
)

// progressReporter renders registration events as coloured lines with a
// spinner while a request is in flight
type progressReporter struct {
	mu  sync.Mutex
	out io.Writer
	sp  *spinner.Spinner
}

func newProgressReporter(out io.Writer) *progressReporter {
	return &progressReporter{out: out}
}

func (p *progressReporter) startSpinner(suffix string) {
	p.stopSpinner()
	p.sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(p.out))
	p.sp.Suffix = " " + suffix
	p.sp.Start()
}

func (p *progressReporter) stopSpinner() {
	if p.sp != nil {
		p.sp.Stop()
		p.sp = nil
	}
}

func (p *progressReporter) println(c *color.Color, format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.out, c.Sprintf(format, args...))
}

// Start implements iam.Reporter
func (p *progressReporter) Start(stage iam.Stage, subject string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch stage {
	case iam.StageRegister:
		p.println(color.New(color.FgHiBlue), "📦 Registering a new application in %s...", subject)
	case iam.StageCreateApplication:
		p.println(color.New(color.FgHiMagenta), "🚀 Starting Create Application...")
		p.startSpinner("Creating application...")
	case iam.StageAssignRoles:
		p.println(color.New(color.FgCyan), "🔑 Assigning Roles for Platform services %s...", subject)
	case iam.StageAssignRole:
		p.startSpinner(fmt.Sprintf("Assigning Roles for Platform service %s...", subject))
	}
}

// Done implements iam.Reporter
func (p *progressReporter) Done(stage iam.Stage, subject string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinner()

	switch stage {
	case iam.StageCreateApplication:
		p.println(color.New(color.FgGreen), "✅ Application created successfully!")
	case iam.StageSaveConfig:
		p.println(color.New(color.FgGreen), "📄 Updated application_uid in config file: %s", subject)
	case iam.StageAssignRole:
		p.println(color.New(color.FgGreen), "✅ Assigned role for %s successfully!", subject)
	}
}

// Fail implements iam.Reporter
func (p *progressReporter) Fail(stage iam.Stage, subject string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinner()

	red := color.New(color.FgRed)
	switch stage {
	case iam.StageLoadConfig:
		p.println(red, "❌ Failed to read application config from %s.", subject)
	case iam.StageCreateApplication:
		p.println(red, "❌ Failed to create application.")
	case iam.StageSaveConfig:
		p.println(red, "❌ Failed to update config file %s.", subject)
	case iam.StageAssignRole:
		p.println(red, "❌ Failed to assign role for %s.", subject)
	}
}

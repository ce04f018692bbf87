package explorer

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/hydrogen-lang/hydrogen-compiler/codegen"
	"github.com/hydrogen-lang/hydrogen-compiler/config"
	"github.com/hydrogen-lang/hydrogen-compiler/lexer"
	"github.com/hydrogen-lang/hydrogen-compiler/parser"
)

// Explorer is a text user interface showing every stage of a compilation
// side by side: source, token stream, AST and generated assembly
type Explorer struct {
	App        *tview.Application
	MainLayout *tview.Flex

	SourceView *tview.TextView
	TokensView *tview.TextView
	ASTView    *tview.TextView
	AsmView    *tview.TextView
	StatusBar  *tview.TextView

	sourceFile string
	cfg        *config.Config
	focusOrder []*tview.TextView
	focusIndex int
}

// New creates an explorer for the given source file
func New(sourceFile string, cfg *config.Config) *Explorer {
	e := &Explorer{
		App:        tview.NewApplication(),
		sourceFile: sourceFile,
		cfg:        cfg,
	}

	e.initializeViews()
	e.buildLayout()
	e.setupKeyBindings()

	return e
}

// initializeViews creates all the view panels
func (e *Explorer) initializeViews() {
	newPane := func(title string) *tview.TextView {
		view := tview.NewTextView().
			SetDynamicColors(e.cfg.Explorer.ColorOutput).
			SetScrollable(true).
			SetWrap(false)
		view.SetBorder(true).SetTitle(" " + title + " ")
		return view
	}

	e.SourceView = newPane("Source")
	e.TokensView = newPane("Tokens")
	e.ASTView = newPane("AST")
	e.AsmView = newPane("Assembly")

	e.StatusBar = tview.NewTextView().SetDynamicColors(e.cfg.Explorer.ColorOutput)
	e.StatusBar.SetBorder(false)

	e.focusOrder = []*tview.TextView{e.SourceView, e.TokensView, e.ASTView, e.AsmView}
}

// buildLayout constructs the explorer layout
func (e *Explorer) buildLayout() {
	// Left column: source over tokens
	left := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(e.SourceView, 0, 3, true).
		AddItem(e.TokensView, 0, 2, false)

	// Right column: AST over assembly
	right := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(e.ASTView, 0, 2, false).
		AddItem(e.AsmView, 0, 3, false)

	content := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(left, 0, 1, true).
		AddItem(right, 0, 1, false)

	e.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(content, 0, 1, true).
		AddItem(e.StatusBar, 1, 0, false)
}

// setupKeyBindings sets up keyboard shortcuts
func (e *Explorer) setupKeyBindings() {
	e.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF5:
			e.Refresh()
			return nil
		case tcell.KeyTab:
			e.cycleFocus()
			return nil
		case tcell.KeyCtrlC:
			e.App.Stop()
			return nil
		}
		if event.Rune() == 'q' {
			e.App.Stop()
			return nil
		}
		return event
	})
}

// cycleFocus moves focus to the next pane
func (e *Explorer) cycleFocus() {
	e.focusIndex = (e.focusIndex + 1) % len(e.focusOrder)
	e.App.SetFocus(e.focusOrder[e.focusIndex])
}

// Refresh reloads the source file and recompiles every stage into its pane
func (e *Explorer) Refresh() {
	content, err := os.ReadFile(e.sourceFile)
	if err != nil {
		e.setStatus(fmt.Sprintf("[red]Error reading %s: %v", e.sourceFile, err))
		return
	}
	source := string(content)
	e.SourceView.SetText(source)

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		e.TokensView.SetText("")
		e.ASTView.SetText("")
		e.AsmView.SetText("")
		e.setStatus(fmt.Sprintf("[red]%v", err))
		return
	}
	e.TokensView.SetText(FormatTokens(tokens))

	prog, err := parser.New(tokens).Parse()
	if err != nil {
		e.ASTView.SetText("")
		e.AsmView.SetText("")
		e.setStatus(fmt.Sprintf("[red]%v", err))
		return
	}
	if err := prog.Validate(); err != nil {
		e.setStatus(fmt.Sprintf("[yellow]%v", err))
	} else {
		e.setStatus(fmt.Sprintf("%s compiled. F5 reload, Tab cycle panes, q quit", e.sourceFile))
	}
	e.ASTView.SetText(FormatAST(prog, e.cfg.Explorer.ASTIndent))

	gen := codegen.New()
	gen.SetComments(e.cfg.Output.Comments)
	asm, err := gen.Generate(prog)
	if err != nil {
		e.AsmView.SetText("")
		e.setStatus(fmt.Sprintf("[red]%v", err))
		return
	}
	e.AsmView.SetText(asm)
}

// setStatus replaces the status bar contents
func (e *Explorer) setStatus(msg string) {
	e.StatusBar.SetText(msg)
}

// Run compiles once and enters the interactive event loop
func (e *Explorer) Run() error {
	e.Refresh()
	return e.App.SetRoot(e.MainLayout, true).SetFocus(e.SourceView).Run()
}

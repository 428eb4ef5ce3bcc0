// Package tui drives a converter form from the terminal.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/vadiminshakov/coinconv/internal"
	"github.com/vadiminshakov/coinconv/internal/domain"
	"github.com/vadiminshakov/coinconv/internal/services/format"
)

const (
	title           = "CRYPTO CONVERTER"
	successMessage  = "Conversion successful"
	failureMessage  = "Conversion failed!"
	validationHint  = "Please select a cryptocurrency and enter a valid amount (minimum 1)"
	assetListHeight = 12
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	danger    = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5F6D"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	bannerStyle = lipgloss.NewStyle().
			Foreground(danger).
			Border(lipgloss.NormalBorder()).
			BorderForeground(danger).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().Foreground(special).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(danger).Bold(true)

	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			MarginTop(1)
)

// UI interactive terminal front end of a Form.
type UI struct {
	form *internal.Form
	out  io.Writer
}

// New creates a terminal UI for form.
func New(form *internal.Form) *UI {
	return &UI{form: form, out: os.Stdout}
}

// Run loads the catalog and loops over conversions until the user quits or ctx is done.
func (u *UI) Run(ctx context.Context) error {
	u.withSpinner(ctx, "Loading cryptocurrencies...", func() {
		// the error is rendered through the form state banner
		_ = u.form.Start(ctx)
	})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		again, err := u.round(ctx)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if !again {
			return nil
		}
	}
}

func (u *UI) round(ctx context.Context) (bool, error) {
	u.screen()

	state := u.form.State()
	fiat := string(state.SelectedFiat)
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Fiat Currency").
				Options(fiatOptions()...).
				Value(&fiat),
		),
	).WithShowHelp(false).Run()
	if err != nil {
		return false, err
	}

	if code := domain.FiatCode(fiat); code != state.SelectedFiat || state.Catalog.IsEmpty() {
		u.withSpinner(ctx, "Loading cryptocurrencies...", func() {
			_ = u.form.SelectFiat(ctx, code)
		})
		u.screen()
		state = u.form.State()
	}

	if state.Catalog.IsEmpty() {
		return u.confirm("Retry loading cryptocurrencies?", "Retry", "Quit")
	}

	asset := state.SelectedAsset
	amount := ""
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Cryptocurrency").
				Options(assetOptions(state.Catalog)...).
				Height(assetListHeight).
				Value(&asset),
			huh.NewInput().
				Title("Amount").
				Description("Minimum 1").
				Value(&amount).
				Validate(validateAmount),
		),
	).Run()
	if err != nil {
		return false, err
	}

	if err := u.form.SelectAsset(asset); err != nil {
		u.notify(err)
		return u.confirm("Convert another amount?", "Yes", "No, exit")
	}

	var convErr error
	u.withSpinner(ctx, "Converting...", func() {
		_, convErr = u.form.Convert(ctx, amount)
	})
	u.notify(convErr)
	fmt.Fprintln(u.out, renderResult(u.form.State()))

	return u.confirm("Convert another amount?", "Yes", "No, exit")
}

func (u *UI) screen() {
	fmt.Fprint(u.out, "\033[H\033[2J")
	fmt.Fprintln(u.out, headerStyle.Render(title))
	if banner := u.form.State().Banner(); banner != "" {
		fmt.Fprintln(u.out, renderBanner(banner))
	}
}

func (u *UI) notify(err error) {
	fmt.Fprintln(u.out, renderNotification(err))
}

func (u *UI) confirm(question, yes, no string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative(yes).
				Negative(no).
				Value(&ok),
		),
	).Run()
	return ok, err
}

func (u *UI) withSpinner(ctx context.Context, title string, action func()) {
	spinCtx, stop := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer stop()
		action()
	}()

	// the spinner exits with spinCtx; without a terminal it returns at once
	_ = spinner.New().Title(title).Context(spinCtx).Run()
	<-done
}

func fiatOptions() []huh.Option[string] {
	codes := domain.FiatCodes()
	opts := make([]huh.Option[string], 0, len(codes))
	for _, c := range codes {
		opts = append(opts, huh.NewOption(c.String(), c.String()))
	}
	return opts
}

func assetOptions(c domain.Catalog) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(c.Assets))
	for _, a := range c.Assets {
		opts = append(opts, huh.NewOption(a.Name, a.ID))
	}
	return opts
}

func validateAmount(s string) error {
	d, err := domain.ParseAmount(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.LessThan(domain.MinAmount) {
		return fmt.Errorf("must be at least %s", domain.MinAmount.String())
	}
	return nil
}

func renderBanner(msg string) string {
	return bannerStyle.Render(msg)
}

func renderNotification(err error) string {
	switch {
	case err == nil:
		return successStyle.Render("✓ " + successMessage)
	case errors.Is(err, domain.ErrStaleResponse):
		return ""
	case domain.IsValidationError(err):
		return errorStyle.Render("✗ " + validationHint)
	default:
		return errorStyle.Render("✗ " + failureMessage)
	}
}

func renderResult(s internal.FormState) string {
	if s.Result == nil {
		return lipgloss.NewStyle().Foreground(subtle).Render("No conversion yet")
	}
	name := s.Result.AssetID
	if a, ok := s.Catalog.Find(s.Result.AssetID); ok {
		name = a.Name
	}
	body := fmt.Sprintf("Converted Amount: %s\n1 %s = %s",
		format.FormatCurrency(s.Result.Amount, s.Result.Fiat),
		name,
		format.FormatCurrency(s.Result.UnitPrice, s.Result.Fiat),
	)
	return resultStyle.Render(body)
}

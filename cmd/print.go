package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chinmay1088/pubkey-profile/sdk"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printProfile(w io.Writer, p *sdk.Profile) {
	fmt.Fprintf(w, "👤 %s\n", color.New(color.Bold).Sprint(p.Username))
	fmt.Fprintf(w, "   📍 Account: %s\n", p.PublicKey)
	if p.AvatarURL != "" {
		fmt.Fprintf(w, "   🖼  Avatar: %s\n", p.AvatarURL)
	}
	fmt.Fprintf(w, "   💸 Fee payer: %s\n", p.FeePayer)

	fmt.Fprintf(w, "   🔑 Authorities (%d):\n", len(p.Authorities))
	for _, a := range p.Authorities {
		fmt.Fprintf(w, "      - %s\n", a)
	}

	fmt.Fprintf(w, "   🪪 Identities (%d):\n", len(p.Identities))
	for _, i := range p.Identities {
		fmt.Fprintf(w, "      - %s %s (%s)\n", color.CyanString(i.Provider.String()), i.ProviderID, i.Name)
	}
}

func printPointer(w io.Writer, p *sdk.Pointer) {
	fmt.Fprintf(w, "🧭 %s %s\n", color.CyanString(p.Provider.String()), p.ProviderID)
	fmt.Fprintf(w, "   📍 Account: %s\n", p.PublicKey)
	fmt.Fprintf(w, "   👤 Profile: %s\n", p.Profile)
}

// newSpinner shows progress for account scans of unknown length.
func newSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

// withSpinner runs fn while a spinner ticks on stderr.
func withSpinner[T any](description string, fn func() (T, error)) (T, error) {
	bar := newSpinner(description)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	v, err := fn()
	close(done)
	_ = bar.Finish()
	return v, err
}

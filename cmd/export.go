package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chinmay1088/pubkey-profile/api"
	"github.com/chinmay1088/pubkey-profile/sdk"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export profiles and pointers",
	Long: `Export the profiles and identity pointers of the program.

File formats:
  --csv        Export to CSV format (default)
  --json       Export to JSON format

Data exported:
  • Every profile with its authorities and identities
  • Every identity pointer
  • Data from your current cluster

Examples:
  pubkey-profile export                 # Export to CSV (default)
  pubkey-profile export --json          # Export to JSON
  pubkey-profile export --csv --json    # Export to both formats
  pubkey-profile export --mine          # Only profiles your wallet controls`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	csvFlag   bool
	jsonFlag  bool
	exportDir string
)

func init() {
	exportCmd.Flags().BoolVar(&csvFlag, "csv", false, "Export to CSV format")
	exportCmd.Flags().BoolVar(&jsonFlag, "json", false, "Export to JSON format")
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "", "output directory (default <home>/exports)")
	exportCmd.Flags().BoolVar(&flagMine, "mine", false, "only profiles your wallet is an authority of")
	exportCmd.Flags().StringVar(&flagAuthority, "authority", "", "only profiles with this authority")
}

// ExportData is the JSON export document.
type ExportData struct {
	ExportDate string        `json:"export_date"`
	Cluster    api.Cluster   `json:"cluster"`
	ProgramID  string        `json:"program_id"`
	Profiles   []sdk.Profile `json:"profiles"`
	Pointers   []sdk.Pointer `json:"pointers"`
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if !csvFlag && !jsonFlag {
		csvFlag = true
	}

	filter, err := authorityFilter()
	if err != nil {
		return err
	}

	fmt.Printf("🌐 Current cluster: %s\n", app.networkLabel())
	fmt.Println("📊 Preparing export data...")
	bar := progressbar.NewOptions(100,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetDescription("[cyan][1/3][reset] Collecting profiles..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	data := &ExportData{
		ExportDate: time.Now().Format("2006-01-02 15:04:05"),
		Cluster:    app.cluster,
		ProgramID:  app.sdk.ProgramID().String(),
	}

	profiles, err := app.sdk.GetProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect profiles: %w", err)
	}
	data.Profiles = filterProfiles(profiles, filter)
	_ = bar.Set(40)

	bar.Describe("[cyan][2/3][reset] Collecting pointers...")
	pointers, err := app.sdk.GetPointers(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect pointers: %w", err)
	}
	data.Pointers = filterPointers(pointers, data.Profiles, !filter.IsZero())
	_ = bar.Set(70)

	dir, err := prepareExportDirectory(exportDir)
	if err != nil {
		return fmt.Errorf("failed to prepare export directory: %w", err)
	}

	bar.Describe("[cyan][3/3][reset] Writing export files...")
	files, err := writeExportFiles(data, dir, time.Now(), csvFlag, jsonFlag)
	if err != nil {
		return fmt.Errorf("failed to write export files: %w", err)
	}

	_ = bar.Set(100)
	bar.Describe("[green][✓][reset] Export completed!")
	fmt.Println()

	fmt.Println("📁 Export completed successfully!")
	for _, f := range files {
		fmt.Printf("📍 %s\n", f)
	}
	fmt.Println()
	fmt.Println("📊 Export Summary:")
	fmt.Printf("   Cluster: %s\n", strings.ToUpper(data.Cluster.String()))
	fmt.Printf("   Profiles: %d\n", len(data.Profiles))
	fmt.Printf("   Pointers: %d\n", len(data.Pointers))
	return nil
}

// filterPointers keeps the pointers of profiles when scoped is set.
func filterPointers(pointers []sdk.Pointer, profiles []sdk.Profile, scoped bool) []sdk.Pointer {
	if !scoped {
		return pointers
	}

	keep := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		keep[p.PublicKey.String()] = struct{}{}
	}

	out := make([]sdk.Pointer, 0, len(pointers))
	for _, p := range pointers {
		if _, ok := keep[p.Profile.String()]; ok {
			out = append(out, p)
		}
	}
	return out
}

func prepareExportDirectory(dir string) (string, error) {
	if dir == "" {
		dir = filepath.Join(app.cfg.Home, "exports")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// writeExportFiles writes the requested formats and returns the file paths.
func writeExportFiles(data *ExportData, dir string, now time.Time, asCSV, asJSON bool) ([]string, error) {
	base := fmt.Sprintf("pubkey_profiles_%s_%s", data.Cluster, now.Format("20060102_150405"))

	var files []string
	if asCSV {
		name := filepath.Join(dir, base+".csv")
		if err := writeCSVFile(name, data); err != nil {
			return nil, fmt.Errorf("failed to write CSV export: %w", err)
		}
		files = append(files, name)
	}
	if asJSON {
		name := filepath.Join(dir, base+".json")
		if err := writeJSONFile(name, data); err != nil {
			return nil, fmt.Errorf("failed to write JSON export: %w", err)
		}
		files = append(files, name)
	}
	return files, nil
}

func writeCSVFile(filename string, data *ExportData) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{"Cluster", "Data Type", "Account", "Name", "Details"}); err != nil {
		return err
	}

	cluster := data.Cluster.String()
	for _, p := range data.Profiles {
		authorities := make([]string, len(p.Authorities))
		for i, a := range p.Authorities {
			authorities[i] = a.String()
		}
		identities := make([]string, len(p.Identities))
		for i, id := range p.Identities {
			identities[i] = fmt.Sprintf("%s:%s (%s)", id.Provider, id.ProviderID, id.Name)
		}

		if err := writer.Write([]string{
			cluster,
			"Profile",
			p.PublicKey.String(),
			p.Username,
			fmt.Sprintf("Avatar: %s | Fee payer: %s | Authorities: %s | Identities: %s",
				p.AvatarURL, p.FeePayer, strings.Join(authorities, " "), strings.Join(identities, "; ")),
		}); err != nil {
			return err
		}
	}

	for _, p := range data.Pointers {
		if err := writer.Write([]string{
			cluster,
			"Pointer",
			p.PublicKey.String(),
			fmt.Sprintf("%s:%s", p.Provider, p.ProviderID),
			fmt.Sprintf("Profile: %s", p.Profile),
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeJSONFile(filename string, data *ExportData) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, out, 0600)
}

package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/chinmay1088/pubkey-profile/sdk"
	"github.com/spf13/cobra"
)

var pointerCmd = &cobra.Command{
	Use:   "pointer",
	Short: "Inspect identity pointers",
	Long: `Pointers map a linked identity (provider + provider id) to the profile
that owns it.

Examples:
  pubkey-profile pointer list
  pubkey-profile pointer get discord 1234`,
}

var pointerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pointer accounts of the program",
	Args:  cobra.NoArgs,
	RunE:  runPointerList,
}

var pointerGetCmd = &cobra.Command{
	Use:   "get <provider> <provider-id>",
	Short: "Show the pointer of an identity",
	Args:  cobra.ExactArgs(2),
	RunE:  runPointerGet,
}

func init() {
	pointerCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "print pointers as JSON")
	pointerCmd.AddCommand(pointerListCmd, pointerGetCmd)
}

func runPointerList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	pointers, err := withSpinner("Scanning pointers...", func() ([]sdk.Pointer, error) {
		return app.sdk.GetPointers(ctx)
	})
	if err != nil {
		return err
	}
	sort.Slice(pointers, func(i, j int) bool {
		if pointers[i].Provider != pointers[j].Provider {
			return pointers[i].Provider < pointers[j].Provider
		}
		return pointers[i].ProviderID < pointers[j].ProviderID
	})

	if flagJSON {
		return printJSON(os.Stdout, pointers)
	}

	fmt.Printf("🧭 %d pointers on %s\n\n", len(pointers), app.networkLabel())
	for i := range pointers {
		printPointer(os.Stdout, &pointers[i])
	}
	return nil
}

func runPointerGet(cmd *cobra.Command, args []string) error {
	provider, err := parseIdentity(args[0], args[1])
	if err != nil {
		return err
	}

	pda, _, err := app.sdk.GetPointerPDA(provider, args[1])
	if err != nil {
		return err
	}

	pointer, err := app.sdk.GetPointerNullable(cmd.Context(), pda)
	if err != nil {
		return err
	}
	if pointer == nil {
		fmt.Printf("No %s identity %s is linked on %s\n", provider, args[1], app.cluster)
		fmt.Printf("   📍 Pointer address: %s\n", pda)
		return nil
	}

	if flagJSON {
		return printJSON(os.Stdout, pointer)
	}
	printPointer(os.Stdout, pointer)
	return nil
}

// Package main provides the babyjubhd CLI tool for deriving Baby Jubjub keys
// from a seed phrase.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/complex-gh/babyjubhd"
	"github.com/mattn/go-isatty"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/term"
)

const (
	maxWidth = 72
)

var (
	baseStyle  = lipgloss.NewStyle().Margin(0, 0, 1, 2) //nolint:mnd
	red        = lipgloss.Color(completeColor("#FF4444", "196", "9"))
	errorStyle = baseStyle.
			Foreground(red).
			Background(lipgloss.AdaptiveColor{Light: completeColor("#FFEBEB", "255", "7"), Dark: completeColor("#2B1A1A", "235", "8")}).
			Padding(1, 2) //nolint:mnd
	labelStyle = lipgloss.NewStyle().Bold(true)

	language       string
	wordCount      int
	sshKeyPath     string
	seedPassphrase string
	askPassphrase  bool

	rootCmd = &cobra.Command{
		Use:   "babyjubhd",
		Short: "Derive Baby Jubjub keys from a seed phrase",
		Long: `Derive hierarchical deterministic Baby Jubjub keys from a BIP39 seed phrase.

Paths have the form m/i1/i2'/..., where a trailing ' marks a hardened step.
The master key is HMAC-SHA512("BabyJub seed", seed).

The seed phrase is read from stdin when it is piped, otherwise it is
prompted for without echo. Use --ssh-key to derive the phrase from an
ed25519 SSH key instead.

SECURITY TIP: Add a space before the command to prevent it from being
saved in your shell history.`,
		Example: `  babyjubhd pubkey "m/44'/0'/0'/0/0"
  echo "abandon ... about" | babyjubhd privkey "m/0'/1/2'"
  babyjubhd pubkey m/0/1 --ssh-key ~/.ssh/id_ed25519
  babyjubhd child <extended-public-key> m/0/1
  babyjubhd mnemonic --words 24 --language japanese`,
		SilenceUsage: true,
	}

	privkeyCmd = &cobra.Command{
		Use:          "privkey <path>",
		Short:        "Print the extended private key at a derivation path",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			src, err := seedSource()
			if err != nil {
				return renderError(err)
			}
			priv, err := babyjubhd.DerivePrivateKeyFromPath(src, args[0])
			if err != nil {
				return renderError(err)
			}
			defer priv.Zero()

			chainCode := priv.ChainCode()
			printField(os.Stdout, "path", args[0])
			printField(os.Stdout, "k", priv.Scalar().String())
			printField(os.Stdout, "k (hex)", priv.ScalarHex())
			printField(os.Stdout, "chain code", fmt.Sprintf("%x", chainCode[:]))
			printField(os.Stdout, "extended", priv.Encode())
			return nil
		},
	}

	pubkeyCmd = &cobra.Command{
		Use:          "pubkey <path>",
		Short:        "Print the extended public key at a derivation path",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			src, err := seedSource()
			if err != nil {
				return renderError(err)
			}
			pub, err := babyjubhd.DerivePublicKeyFromPath(src, args[0])
			if err != nil {
				return renderError(err)
			}
			printPublicKey(os.Stdout, args[0], pub)
			return nil
		},
	}

	childCmd = &cobra.Command{
		Use:   "child <extended-public-key> <path>",
		Short: "Derive a public descendant from an extended public key",
		Long: `Derive a public descendant from an extended public key.

Only non-hardened paths can be derived without the private key.`,
		Args:         cobra.ExactArgs(2), //nolint:mnd
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			parent, err := babyjubhd.ParseExtendedPublicKey(strings.TrimSpace(args[0]))
			if err != nil {
				return renderError(err)
			}
			pub, err := parent.DerivePath(args[1])
			if errors.Is(err, babyjubhd.ErrDeriveHardFromPublic) {
				return renderError(fmt.Errorf("%w: use pubkey with the seed phrase for hardened paths", err))
			}
			if err != nil {
				return renderError(err)
			}
			printPublicKey(os.Stdout, args[1], pub)
			return nil
		},
	}

	mnemonicCmd = &cobra.Command{
		Use:   "mnemonic",
		Short: "Generate a new BIP39 seed phrase",
		Long: `Generate a new random BIP39 seed phrase.

Valid word counts are: 12, 15, 18, 21, or 24.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := setLanguage(language); err != nil {
				return err
			}
			words, err := newMnemonic(wordCount)
			if err != nil {
				return err
			}
			fmt.Println(words)
			return nil
		},
	}

	manCmd = &cobra.Command{
		Use:          "man",
		Args:         cobra.NoArgs,
		Short:        "generate man pages",
		Hidden:       true,
		SilenceUsage: true,
		RunE: func(*cobra.Command, []string) error {
			manPage, err := mcobra.NewManPage(1, rootCmd)
			if err != nil {
				//nolint: wrapcheck
				return err
			}
			manPage = manPage.WithSection("Copyright", "(C) 2025-2026 complex.\n"+
				"Released under MIT license.")
			fmt.Println(manPage.Build(roff.NewDocument()))
			return nil
		},
	}

	// completionCmd generates shell completion scripts for bash, zsh, fish, and powershell.
	completionCmd = &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for babyjubhd.

To load completions:

Bash:
  $ source <(babyjubhd completion bash)

Zsh:
  $ babyjubhd completion zsh > "${fpath[1]}/_babyjubhd"

Fish:
  $ babyjubhd completion fish | source

PowerShell:
  PS> babyjubhd completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceUsage:          true,
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unknown shell: %s", args[0])
			}
		},
	}
)

func init() {
	for _, cmd := range []*cobra.Command{privkeyCmd, pubkeyCmd} {
		cmd.Flags().StringVar(&sshKeyPath, "ssh-key", "", "Derive the seed phrase from an ed25519 SSH key instead of reading it")
		cmd.Flags().StringVar(&seedPassphrase, "seed-passphrase", "", "Passphrase to combine with the SSH key seed (requires --ssh-key)")
		cmd.Flags().BoolVar(&askPassphrase, "ask-passphrase", false, "Prompt for a BIP39 passphrase")
	}
	mnemonicCmd.Flags().StringVarP(&language, "language", "l", "en", "Word list language")
	mnemonicCmd.Flags().IntVarP(&wordCount, "words", "w", 24, "Number of words (12, 15, 18, 21 or 24)") //nolint:mnd

	rootCmd.AddCommand(privkeyCmd)
	rootCmd.AddCommand(pubkeyCmd)
	rootCmd.AddCommand(childCmd)
	rootCmd.AddCommand(mnemonicCmd)
	rootCmd.AddCommand(manCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printPublicKey(w io.Writer, path string, pub babyjubhd.ExtendedPublicKey) {
	point := pub.Point()
	chainCode := pub.ChainCode()
	printField(w, "path", path)
	printField(w, "K.x", point.X.String())
	printField(w, "K.y", point.Y.String())
	printField(w, "K (packed)", pub.CompressedHex())
	printField(w, "chain code", fmt.Sprintf("%x", chainCode[:]))
	printField(w, "extended", pub.String())
}

// printField writes one "label: value" line. Labels are bold on terminals.
func printField(w io.Writer, label, value string) {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		label = labelStyle.Render(label)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", label, value)
}

// newMnemonic generates a fresh phrase with the current word list.
func newMnemonic(words int) (string, error) {
	entropyBits := map[int]int{
		12: 128, //nolint:mnd
		15: 160, //nolint:mnd
		18: 192, //nolint:mnd
		21: 224, //nolint:mnd
		24: 256, //nolint:mnd
	}
	bits, ok := entropyBits[words]
	if !ok {
		return "", fmt.Errorf("invalid word count: %d (must be 12, 15, 18, 21, or 24)", words)
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("could not generate entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("could not create a mnemonic set of words: %w", err)
	}
	return phrase, nil
}

func getWidth(maxw int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint: gosec
	if err != nil || w > maxw {
		return maxWidth
	}
	return w
}

func renderBlock(w io.Writer, s lipgloss.Style, width int, str string) {
	_, _ = io.WriteString(w, s.Width(width).Render(str))
	_, _ = io.WriteString(w, "\n")
}

// renderError shows err in a styled block when stdout is a terminal and
// returns it so the command exits with a non-zero code.
func renderError(err error) error {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		b := strings.Builder{}
		w := getWidth(maxWidth)

		b.WriteRune('\n')
		renderBlock(&b, errorStyle, w, err.Error())

		fmt.Print(b.String())
	}
	return err
}

func completeColor(truecolor, ansi256, ansi string) string {
	//nolint: exhaustive
	switch lipgloss.ColorProfile() {
	case termenv.TrueColor:
		return truecolor
	case termenv.ANSI256:
		return ansi256
	}
	return ansi
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/telfer/alp/internal/config"
	"github.com/telfer/alp/internal/keyring"
)

// passwordReader abstracts terminal password input for testing.
type passwordReader interface {
	ReadPassword() (string, error)
	IsTerminal() bool
}

// terminalReader reads passwords from the terminal using golang.org/x/term.
type terminalReader struct {
	fd int
}

func newTerminalReader(fd int) *terminalReader {
	return &terminalReader{fd: fd}
}

func (r *terminalReader) ReadPassword() (string, error) {
	password, err := term.ReadPassword(r.fd)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func (r *terminalReader) IsTerminal() bool {
	return term.IsTerminal(r.fd)
}

// configureOptions holds dependencies for the configure command, so tests
// can inject a mock keyring and scripted input.
type configureOptions struct {
	configPath     string
	store          keyring.Store
	passwordReader passwordReader
	input          io.Reader
}

// newConfigureCmd creates the configure command with the given options.
func newConfigureCmd(opts configureOptions) *cobra.Command {
	var flagLive bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Store API credentials",
		Long: `Store an Alpaca API key pair for one trading environment.

The key ID is written to the config file; the secret key goes into the
system keyring. Configure the paper environment by default, or pass
--live for the live environment.

Examples:
  alp configure          # paper credentials
  alp configure --live   # live credentials`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(cmd, opts, flagLive)
		},
	}

	cmd.Flags().BoolVar(&flagLive, "live", false, "Configure the live trading environment")
	cmd.SilenceUsage = true

	return cmd
}

func runConfigure(cmd *cobra.Command, opts configureOptions, live bool) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	env := config.EnvPaper
	if live {
		env = config.EnvLive
	}

	keyID, err := readLine(opts.input, cmd.OutOrStdout(), fmt.Sprintf("%s key ID: ", env))
	if err != nil {
		return err
	}
	if keyID == "" {
		return fmt.Errorf("key ID must not be empty")
	}

	secret, err := readSecret(opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if secret == "" {
		return fmt.Errorf("secret key must not be empty")
	}

	secretKey := keyring.KeyPaperSecret
	if live {
		secretKey = keyring.KeyLiveSecret
	}
	if err := opts.store.Set(keyring.ServiceName, secretKey, secret); err != nil {
		return fmt.Errorf("failed to store secret key: %w", err)
	}

	firstKeys := cfg.LiveKeyID == "" && cfg.PaperKeyID == ""
	if live {
		cfg.LiveKeyID = keyID
	} else {
		cfg.PaperKeyID = keyID
	}
	// The first configured environment becomes the default.
	if firstKeys {
		cfg.Environment = env
	}

	if err := config.Save(opts.configPath, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored %s credentials (key ID %s)\n", env, keyID)
	return nil
}

// readSecret reads the secret key without echo when attached to a
// terminal, falling back to a plain line read otherwise.
func readSecret(opts configureOptions, out io.Writer) (string, error) {
	_, _ = fmt.Fprint(out, "secret key: ")
	if opts.passwordReader != nil && opts.passwordReader.IsTerminal() {
		secret, err := opts.passwordReader.ReadPassword()
		_, _ = fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read secret key: %w", err)
		}
		return strings.TrimSpace(secret), nil
	}
	return readLine(opts.input, io.Discard, "")
}

// readLine prompts and reads one trimmed line.
func readLine(in io.Reader, out io.Writer, prompt string) (string, error) {
	if prompt != "" {
		_, _ = fmt.Fprint(out, prompt)
	}
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func init() {
	rootCmd.AddCommand(newConfigureCmd(configureOptions{
		configPath:     config.ConfigPath(),
		store:          keyring.NewEnvStore(keyring.NewSystemStore()),
		passwordReader: newTerminalReader(int(os.Stdin.Fd())),
		input:          os.Stdin,
	}))
}

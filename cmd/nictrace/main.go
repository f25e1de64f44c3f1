package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jbweber/nictrace/internal/config"
	"github.com/jbweber/nictrace/internal/loader"
	"github.com/jbweber/nictrace/internal/logging"
	"github.com/jbweber/nictrace/internal/output"
	"github.com/jbweber/nictrace/internal/vm"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options holds the parsed command line flags.
type options struct {
	debug       bool
	nic         int
	configPath  string
	list        bool
	output      string
	noHeaders   bool
	writeConfig bool

	// log is set once flags are parsed.
	log *logrus.Logger
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &options{}

	cmd := newRootCmd(opts, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return vm.ExitSuccess
	}

	// Usage errors happen before RunE builds the logger.
	if opts.log == nil {
		opts.log = logging.New(logging.Options{Debug: opts.debug, Out: stderr})
	}
	opts.log.Error(err)
	return vm.ExitCode(err)
}

func newRootCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nictrace [flags] <machine> <start|stop>",
		Short: "nictrace - VirtualBox adapter packet tracing",
		Long: `nictrace starts or stops packet tracing on a VirtualBox VM network adapter.

start saves the VM state, enables tracing on the adapter, starts the VM again
and opens the capture in Wireshark. stop saves the VM state, disables tracing,
deletes the capture file and starts the VM again.

Capture files are written to <capture_dir>/<machine>-adp<nic>.pcap, with spaces
removed from the machine name.

Use --list to show registered VMs and the adapters being traced:
  -o table  Human-readable table (default)
  -o yaml   YAML list
  -o json   JSON array

Use --write-config to create a config file holding the defaults.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.list || opts.writeConfig {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New(logging.Options{Debug: opts.debug, Out: stderr})
			opts.log = log

			if opts.writeConfig {
				return writeConfig(opts.configPath, stdout)
			}

			cfg, err := loader.Load(opts.configPath)
			if err != nil {
				return &vm.Error{Kind: vm.KindConfig, Msg: "failed to load config", Err: err}
			}
			log.WithField("vboxmanage", cfg.VBoxManage).Debug("configuration loaded")

			if opts.list {
				return runList(cmd.Context(), cfg, opts, stdout, log)
			}

			return vm.Run(cmd.Context(), cfg, vm.Request{
				Machine: args[0],
				Action:  args[1],
				NIC:     opts.nic,
			}, log)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
	flags.IntVarP(&opts.nic, "nic", "n", 0, "network adapter number to trace")
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/nictrace/config.yaml)")
	flags.BoolVar(&opts.list, "list", false, "list VMs and traced adapters")
	flags.StringVarP(&opts.output, "output", "o", string(output.FormatTable), "output format for --list: table, yaml, json")
	flags.BoolVar(&opts.noHeaders, "no-headers", false, "omit the table header row for --list")
	flags.BoolVar(&opts.writeConfig, "write-config", false, "write a default config file to the --config path and exit")

	return cmd
}

func runList(ctx context.Context, cfg *config.Config, opts *options, stdout io.Writer, log logrus.FieldLogger) error {
	formatter, err := output.NewFormatter(opts.output, output.Options{NoHeaders: opts.noHeaders})
	if err != nil {
		return err
	}

	vms, err := vm.List(ctx, cfg, log)
	if err != nil {
		return err
	}

	result, err := formatter.FormatVMList(vms)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	_, err = fmt.Fprint(stdout, result)
	return err
}

// writeConfig writes the default configuration to path, or to the default
// location when path is empty. An existing file is left untouched.
func writeConfig(path string, stdout io.Writer) error {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return &vm.Error{Kind: vm.KindConfig, Msg: "failed to determine config path", Err: err}
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		return &vm.Error{Kind: vm.KindConfig, Msg: fmt.Sprintf("config file %s already exists", path)}
	}

	if err := loader.SaveToFile(config.Default(), path); err != nil {
		return &vm.Error{Kind: vm.KindConfig, Msg: "failed to write config", Err: err}
	}

	_, err := fmt.Fprintln(stdout, path)
	return err
}

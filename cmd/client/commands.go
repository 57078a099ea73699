package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/MKhiriev/go-page-builder/internal/adapter"
	"github.com/MKhiriev/go-page-builder/internal/config"
	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/models"
	"github.com/spf13/cobra"
)

type adapterFactory func(cfg config.Adapter, logger *logger.Logger) (adapter.BuilderAdapter, error)

// rootOptions holds the global flags and the adapter built from them.
type rootOptions struct {
	address  string
	timeout  time.Duration
	logLevel string

	newAdapter adapterFactory
	adapter    adapter.BuilderAdapter
}

func newRootCommand(build models.AppBuildInfo, newAdapter adapterFactory) *cobra.Command {
	opts := &rootOptions{newAdapter: newAdapter}

	cmd := &cobra.Command{
		Use:           "page-builder",
		Short:         "Command line client of the page builder server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.connect()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.address, "address", "a", "", "server address (env ADAPTER_ADDRESS)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "request timeout (env ADAPTER_REQUEST_TIMEOUT)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "client log level")

	cmd.AddCommand(
		newVersionCommand(opts, build),
		newCreateCommand(opts),
		newGetCommand(opts),
		newBodyCommand(opts),
		newBuilderCommand(opts),
		newSaveOptionCommand(opts),
		newNotifyCommand(opts),
		newRenderCommand(opts),
		newImportCommand(opts),
		newDeclareCommand(opts),
		newDescriptorCommand(opts),
		newDecodeCommand(opts),
		newResyncCommand(opts),
	)

	return cmd
}

// connect resolves the adapter settings: flags win over the environment.
func (o *rootOptions) connect() error {
	cfg, err := config.GetAdapterConfig()
	if err != nil {
		return fmt.Errorf("read adapter config: %w", err)
	}
	if o.address != "" {
		cfg.HTTPAddress = o.address
	}
	if o.timeout > 0 {
		cfg.RequestTimeout = o.timeout
	}

	o.adapter, err = o.newAdapter(cfg, logger.NewClientLogger("page-builder-client", o.logLevel))
	if err != nil {
		return fmt.Errorf("create adapter: %w", err)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entity id %q", raw)
	}
	return id, nil
}

// readText returns inline when set, else the contents of path.
func readText(inline, path string) (string, error) {
	if path == "" {
		return inline, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newVersionCommand(opts *rootOptions, build models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Client version: %s\n", build.BuildVersion())
			fmt.Fprintf(out, "Client build date: %s\n", build.BuildDate())
			fmt.Fprintf(out, "Client build commit: %s\n", build.BuildCommit())

			version, err := opts.adapter.Version(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Server version: %s\n", version.Version)
			return nil
		},
	}
}

func newCreateCommand(opts *rootOptions) *cobra.Command {
	var (
		request  models.CreateEntityRequest
		bodyFile string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an entity, or an autosave of --parent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readText(request.Body, bodyFile)
			if err != nil {
				return err
			}
			request.Body = body

			entity, err := opts.adapter.CreateEntity(cmd.Context(), request)
			if err != nil {
				return err
			}
			return printJSON(cmd, entity)
		},
	}

	cmd.Flags().StringVar(&request.Type, "type", "", "entity type")
	cmd.Flags().StringVar(&request.Body, "body", "", "initial body")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "read the initial body from a file")
	cmd.Flags().Int64Var(&request.ParentID, "parent", 0, "canonical entity the autosave belongs to")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			entity, err := opts.adapter.GetEntity(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, entity)
		},
	}
}

func newBodyCommand(opts *rootOptions) *cobra.Command {
	var body, bodyFile string

	cmd := &cobra.Command{
		Use:   "body <id>",
		Short: "Save an entity body the way the host editor does",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			text, err := readText(body, bodyFile)
			if err != nil {
				return err
			}
			return opts.adapter.UpdateBody(cmd.Context(), id, text)
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "new body")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "read the new body from a file")

	return cmd
}

func newBuilderCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "builder <id>",
		Short: "Report whether the builder governs an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := opts.adapter.IsBuilder(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, models.BuilderStatusResponse{EntityID: id, Builder: ok})
		},
	}
}

func newSaveOptionCommand(opts *rootOptions) *cobra.Command {
	var (
		notation, notationFile string
		inactive               bool
	)

	cmd := &cobra.Command{
		Use:   "save-option <id>",
		Short: "Store the builder option of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			text, err := readText(notation, notationFile)
			if err != nil {
				return err
			}
			return opts.adapter.SaveBuilderOption(cmd.Context(), id, models.BuilderOption{Active: !inactive, Notation: text})
		},
	}

	cmd.Flags().StringVar(&notation, "notation", "", "shortcode notation")
	cmd.Flags().StringVar(&notationFile, "notation-file", "", "read the notation from a file")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "store the option with the builder switched off")

	return cmd
}

func newNotifyCommand(opts *rootOptions) *cobra.Command {
	var request models.OptionUpdatedRequest

	cmd := &cobra.Command{
		Use:   "notify <id>",
		Short: "Send an option-updated event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			response, err := opts.adapter.NotifyOptionUpdated(cmd.Context(), id, request)
			if err != nil {
				return err
			}
			return printJSON(cmd, response)
		},
	}

	cmd.Flags().StringVar(&request.OptionKey, "key", "", "updated option key, empty for a full options save")
	cmd.Flags().StringSliceVar(&request.ChangedSubkeys, "subkeys", nil, "changed sub-keys")

	return cmd
}

func newRenderCommand(opts *rootOptions) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render content as it is displayed for an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			html, err := opts.adapter.Render(cmd.Context(), id, content)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "content to render")

	return cmd
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	var key, values string

	cmd := &cobra.Command{
		Use:   "import <id>",
		Short: "Hand an imported options bundle to the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			request := models.ImportRequest{EntityID: id, Key: key}
			if err = json.Unmarshal([]byte(values), &request.Values); err != nil {
				return fmt.Errorf("invalid --values JSON: %w", err)
			}

			applied, err := opts.adapter.Import(cmd.Context(), request)
			if err != nil {
				return err
			}
			return printJSON(cmd, models.ImportResponse{Applied: applied})
		},
	}

	cmd.Flags().StringVar(&key, "key", config.DefaultImportOptionsKey, "imported option key")
	cmd.Flags().StringVar(&values, "values", "{}", "imported option values as a JSON object")

	return cmd
}

func newDeclareCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "declare <type>",
		Short: "Enable the builder for an entity type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.adapter.DeclareSupport(cmd.Context(), args[0])
		},
	}
}

func newDescriptorCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "descriptor <type>",
		Short: "Show the editor option box of an entity type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptor, err := opts.adapter.OptionsDescriptor(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if descriptor == nil {
				return fmt.Errorf("type %q does not support the builder", args[0])
			}
			return printJSON(cmd, descriptor)
		},
	}
}

func newDecodeCommand(opts *rootOptions) *cobra.Command {
	var atts string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode encoded shortcode attributes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw map[string]string
			if err := json.Unmarshal([]byte(atts), &raw); err != nil {
				return fmt.Errorf("invalid --atts JSON: %w", err)
			}
			decoded, err := opts.adapter.DecodeAtts(cmd.Context(), raw)
			if err != nil {
				return err
			}
			return printJSON(cmd, decoded)
		},
	}

	cmd.Flags().StringVar(&atts, "atts", "{}", "attributes as a JSON object of strings")

	return cmd
}

func newResyncCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resync",
		Short: "Replay synchronization for every builder entity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			response, err := opts.adapter.Resync(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, response)
		},
	}
}

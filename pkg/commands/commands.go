package commands

import (
	"fmt"
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/commands/options"
	"tableflip.dev/nestlist/pkg/store"
)

var (
	oo     = &base.OutputOptions{}
	do     = &options.DocumentOptions{}
	logger = logrus.New()
	cfg    store.Config
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:          "nestlist",
		Short:        base.Wrap80("Ordered, nested lists on the command line."),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configure()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddDocumentArgs(cmd, do)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addRemove(topLevel)
	addMove(topLevel)
	addIndent(topLevel)
	addOutdent(topLevel)
	addReorder(topLevel)
	addStep(topLevel)
	addSelect(topLevel)
	addRename(topLevel)
	addKind(topLevel)
	addNormalize(topLevel)
	addGet(topLevel)
	addExport(topLevel)
	addDocs(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// configure loads the config file and sets up logging. Flags win over the
// file.
func configure() error {
	c, err := store.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(c.LogLevel())
	if err != nil {
		return fmt.Errorf("invalid log-level %q: %w", c.LogLevel(), err)
	}
	if do.Verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if do.Name == "" {
		do.Name = c.Document()
	}
	cfg = c
	logger.WithFields(logrus.Fields{
		"path":     c.BasePath(),
		"document": do.Name,
	}).Debug("configured")
	return nil
}

func newService() (*app.Service, error) {
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	return &app.Service{
		Persistence: p,
		Log:         logger.WithField("document", do.Name),
	}, nil
}

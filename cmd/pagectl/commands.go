package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jsamuelsen11/notion-page-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/notion-page-service/internal/domain"
	"github.com/jsamuelsen11/notion-page-service/internal/domain/page"
	"github.com/jsamuelsen11/notion-page-service/internal/ports"
)

// globalOptions are the root flags shared by every subcommand.
type globalOptions struct {
	profile   string
	configDir string
	verbose   bool
}

// managerFactory builds the PageManager a subcommand talks to.
type managerFactory func(opts globalOptions) (ports.PageManager, error)

func newRootCommand(out io.Writer, build managerFactory) *cli.Command {
	manager := func(cmd *cli.Command) (ports.PageManager, error) {
		return build(globalOptions{
			profile:   cmd.String("profile"),
			configDir: cmd.String("config-dir"),
			verbose:   cmd.Bool("verbose"),
		})
	}

	return &cli.Command{
		Name:  "pagectl",
		Usage: "Create and read database pages through the document service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "profile",
				Aliases: []string{"p"},
				Usage:   "Configuration profile (local, dev, qa, prod)",
				Value:   "local",
				Sources: cli.EnvVars("APP_PROFILE"),
			},
			&cli.StringFlag{
				Name:  "config-dir",
				Usage: "Directory holding base.yaml and the profile files",
				Value: "configs",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log at debug level to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a page from a JSON document and print its id",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "database",
						Aliases:  []string{"d"},
						Usage:    "Parent database id",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   `Page document in the API request shape; "-" reads stdin`,
						Value:   "-",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					mgr, err := manager(cmd)
					if err != nil {
						return err
					}
					return runCreate(ctx, mgr, out, cmd.String("database"), cmd.String("file"))
				},
			},
			{
				Name:      "read",
				Usage:     "Print a page with its properties and top-level blocks",
				ArgsUsage: "<page-id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.Args().First()
					if id == "" {
						return domain.NewValidationError("page_id", domain.MsgRequired)
					}
					mgr, err := manager(cmd)
					if err != nil {
						return err
					}
					return runRead(ctx, mgr, out, id)
				},
			},
		},
	}
}

func runCreate(ctx context.Context, mgr ports.PageManager, out io.Writer, databaseID, path string) error {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening page document: %w", err)
		}
		defer f.Close()
		in = f
	}

	p, err := decodeDocument(in)
	if err != nil {
		return err
	}

	id, err := mgr.CreatePage(ctx, p, databaseID)
	if err != nil {
		return err
	}
	return printJSON(out, dto.CreatePageResponse{PageID: id})
}

func runRead(ctx context.Context, mgr ports.PageManager, out io.Writer, pageID string) error {
	p, err := mgr.ReadPageByID(ctx, pageID)
	if err != nil {
		return err
	}
	return printJSON(out, dto.ToPageResponse(p))
}

// decodeDocument reads a CreatePageRequest and converts it the same way the
// HTTP handler does. Unknown members are ignored. Output of read is not
// always accepted here, since computed properties such as formula are
// rejected on create.
func decodeDocument(r io.Reader) (*page.Page, error) {
	var req dto.CreatePageRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("page document is empty")
		}
		return nil, fmt.Errorf("decoding page document: %w", err)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req.ToDomain()
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

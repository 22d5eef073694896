package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	remoteagent "github.com/Objective-Corporation/3sixty-mongo-remoteagent"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/metadata"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/storagemodels"
	"github.com/go-openapi/strfmt"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const chunkSize = 256 * 1024

func repoFlag() cli.Flag {
	return &cli.StringFlag{Name: flagRepo, Aliases: []string{"r"}, Usage: "Repository name from the config file", Required: true}
}

func idFlag() cli.Flag {
	return &cli.StringFlag{Name: flagID, Usage: "Document identity", Required: true}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Enumerate the documents of a repository",
		Flags: []cli.Flag{
			repoFlag(),
			&cli.Float64Flag{Name: "rate", Usage: "Maximum document fetches per second (0 is unlimited)"},
		},
		Action: withRepository(func(ctx context.Context, e *env, conn *remoteagent.Connector, c *cli.Context) error {
			opts := []storagemodels.StreamOption{
				storagemodels.WithErrorHandler(func(err error) bool {
					fmt.Fprintln(os.Stderr, "skipped:", err)
					return true
				}),
			}
			if r := c.Float64("rate"); r > 0 {
				opts = append(opts, storagemodels.WithFetchRate(r, 1))
			}

			var count int
			for res := range conn.Documents(ctx, opts...) {
				if res.Error != nil {
					return res.Error
				}
				d := res.Document
				fmt.Printf("%s\t%s\t%s\t%d\n", d.ID, d.Name, d.MimeType, d.Size)
				count++
			}
			e.log.Info().Int("documents", count).Msg("Listing finished")
			return ctx.Err()
		}),
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:  "get",
		Usage: "Print one document",
		Flags: []cli.Flag{repoFlag(), idFlag()},
		Action: withRepository(func(ctx context.Context, e *env, conn *remoteagent.Connector, c *cli.Context) error {
			doc, err := conn.GetDocument(ctx, c.String(flagID))
			if err != nil {
				return err
			}
			if doc == nil {
				return fmt.Errorf("document %q not found", c.String(flagID))
			}
			return yaml.NewEncoder(os.Stdout).Encode(doc)
		}),
	}
}

func metadataCommand() *cli.Command {
	return &cli.Command{
		Name:  "metadata",
		Usage: "Print the attributes of one document",
		Flags: []cli.Flag{repoFlag(), idFlag()},
		Action: withRepository(func(ctx context.Context, e *env, conn *remoteagent.Connector, c *cli.Context) error {
			md, err := conn.GetDocumentMetadata(ctx, c.String(flagID))
			if err != nil {
				return err
			}
			values, _ := md.Strings()
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("%s=%s\n", k, values[k])
			}
			return nil
		}),
	}
}

func binaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "binary",
		Usage: "Download the payload of one document",
		Flags: []cli.Flag{
			repoFlag(),
			idFlag(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file (default stdout)"},
		},
		Action: withRepository(func(ctx context.Context, e *env, conn *remoteagent.Connector, c *cli.Context) error {
			bin, err := conn.GetDocumentBinary(ctx, c.String(flagID))
			if err != nil {
				return err
			}
			defer bin.Close()

			var out io.Writer = os.Stdout
			if path := c.String("out"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			n, err := io.Copy(out, bin.Reader)
			if err != nil {
				return err
			}
			e.log.Info().Int64("bytes", n).Str("content_type", bin.MimeType).Msg("Binary downloaded")
			return nil
		}),
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete one document",
		Flags: []cli.Flag{repoFlag(), idFlag()},
		Action: withRepository(func(ctx context.Context, e *env, conn *remoteagent.Connector, c *cli.Context) error {
			return conn.DeleteDocument(ctx, c.String(flagID))
		}),
	}
}

func writeCommand() *cli.Command {
	return &cli.Command{
		Name:      "write",
		Usage:     "Store local files as documents of a repository",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			repoFlag(),
			&cli.StringFlag{Name: "parent", Usage: "Parent path recorded with each document", Value: "/"},
			&cli.StringSliceFlag{Name: "meta", Aliases: []string{"m"}, Usage: "Attribute as key=value, repeatable"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("no files given")
			}
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()

			params, err := e.params(c.String(flagRepo))
			if err != nil {
				return err
			}
			md, err := parseMeta(c.StringSlice("meta"))
			if err != nil {
				return err
			}

			ctx := c.Context
			w := remoteagent.NewWriter(e.options()...)
			pending := make([]*remoteagent.PendingWrite, 0, c.NArg())
			for _, path := range c.Args().Slice() {
				doc, chunks, err := openLocal(path, c.String("parent"))
				if err != nil {
					w.Wait()
					return err
				}
				pending = append(pending, w.WriteDocument(ctx, doc, md, chunks, params))
			}

			var failed int
			for _, p := range pending {
				doc, err := p.Wait(ctx)
				if err != nil {
					failed++
					e.log.Error().Err(err).Str("op_id", p.OperationID).Msg("Write failed")
					continue
				}
				fmt.Printf("%s\t%s\n", doc.ID, doc.Name)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d writes failed", failed, len(pending))
			}
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(c *cli.Context) error {
			return yaml.NewEncoder(os.Stdout).Encode(remoteagent.GetVersionInfo())
		},
	}
}

func parseMeta(pairs []string) (metadata.Map, error) {
	md := make(metadata.Map, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid attribute %q, want key=value", pair)
		}
		md[k] = metadata.String(v)
	}
	return md, nil
}

// openLocal describes a local file and streams its content in chunks.
func openLocal(path, parent string) (*storagemodels.Document, <-chan storagemodels.Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	name := filepath.Base(path)
	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		mimeType = storagemodels.DefaultMimeType
	}
	abs, _ := filepath.Abs(path)
	doc := &storagemodels.Document{
		ID:           abs,
		Name:         name,
		MimeType:     mimeType,
		Size:         info.Size(),
		ParentPath:   parent,
		CreatedDate:  strfmt.DateTime(info.ModTime()),
		ModifiedDate: strfmt.DateTime(info.ModTime()),
	}

	chunks := make(chan storagemodels.Chunk, 4)
	go func() {
		defer close(chunks)
		defer f.Close()
		for {
			buf := make([]byte, chunkSize)
			n, err := f.Read(buf)
			if n > 0 {
				chunks <- storagemodels.Chunk{Data: buf[:n]}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				chunks <- storagemodels.Chunk{Err: err}
				return
			}
		}
	}()
	return doc, chunks, nil
}

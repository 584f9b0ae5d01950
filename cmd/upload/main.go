package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/voblako/voblako/internal/seed"
	"github.com/voblako/voblako/internal/uploader"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "server base URL")
	email := flag.String("email", seed.DemoEmail, "account email")
	password := flag.String("password", seed.DemoPassword, "account password")
	path := flag.String("path", "", "storage path to list after uploading")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: upload [flags] file...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	err := run(context.Background(), *addr, *email, *password, *path, flag.Args())
	if err != nil {
		slog.Error("upload failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, addr, email, password, path string, files []string) error {
	client, err := uploader.NewClient(addr)
	if err != nil {
		return err
	}

	user, err := client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	slog.Info("logged in", "email", user.Email)

	orchestrator := uploader.NewOrchestrator(client)
	for _, name := range files {
		content, readErr := os.ReadFile(name)
		if readErr != nil {
			return readErr
		}

		contentType := mime.TypeByExtension(filepath.Ext(name))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		orchestrator.Enqueue(uploader.Source{
			Name:        filepath.Base(name),
			ContentType: contentType,
			Content:     content,
		})
	}

	orchestrator.Run(ctx)

	failed := 0
	for _, task := range orchestrator.Tasks() {
		switch task.Status {
		case uploader.StatusSuccess:
			slog.Info("uploaded", "name", task.Name, "uuid", task.Metadata.UUID, "size", task.Size)
		case uploader.StatusError:
			failed++
			slog.Error("upload rejected", "name", task.Name, "reason", task.Error)
		}
	}

	listing, err := client.Listing(ctx, path)
	if err != nil {
		return fmt.Errorf("listing failed: %w", err)
	}
	for _, item := range listing.Files {
		fmt.Printf("%s\t%s\n", item.Label, item.Meta)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(files))
	}
	return nil
}

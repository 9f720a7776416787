package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"text/tabwriter"

	"github.com/san-kum/mlutils/internal/fetch"
	"github.com/spf13/cobra"
)

func fetchFile(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()
	return newFetcher().DownloadFile(ctx, args[0], args[1], cfg.Fetch.ChunkSize)
}

func zipEntry(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	b, err := newFetcher().FetchZipEntry(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	lines, err := fetch.DecodeLines(b, encoding)
	if err != nil {
		return err
	}

	if destDir == "" {
		for _, line := range lines {
			fmt.Print(line)
		}
		return nil
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}
	name := path.Base(args[1])
	if err := fetch.WriteLines(destDir, name, lines); err != nil {
		return err
	}
	fmt.Printf("wrote %d lines to %s/%s\n", len(lines), destDir, name)
	return nil
}

func showMetadata(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		info, err := fetch.DatasetMetadata(cfg.Fetch.MetadataPath, args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	catalog, err := fetch.ReadJSONMetadata(cfg.Fetch.MetadataPath)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFIELDS\tDOWNLOAD URL")
	for _, name := range names {
		info := catalog[name]
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(info.Fields), info.DownloadURL)
	}
	return w.Flush()
}

func downloadDataset(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	dest := destDir
	if dest == "" {
		dest = cfg.DataDir
	}
	p, err := newFetcher().DownloadDataset(ctx, cfg.Fetch.MetadataPath, args[0], dest)
	if err != nil {
		return err
	}
	fmt.Printf("downloaded %s to %s\n", args[0], p)
	return nil
}

func listCache(cmd *cobra.Command, args []string) error {
	entries, err := newCache().List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("cache is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tFETCHED\tURL")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.Name, e.Size, e.Timestamp.Format("2006-01-02 15:04"), e.URL)
	}
	return w.Flush()
}

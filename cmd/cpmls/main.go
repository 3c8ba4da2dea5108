// Command cpmls is a small external collaborator around the cpm package:
// it opens a CPC-format .dsk image, builds a cpm.FileSystem from it, and
// either prints a directory catalog or streams one file's contents to
// stdout. Adapted from the teacher's cmd/amstrad_cat.go and
// cmd/amstrad_read.go - one *cobra.Command per operation, flags bound in
// init() - but driven by the real cpm.DirIterator/cpm.File instead of the
// teacher's ad-hoc catalog/DirectoryListing helpers.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"cpmfs/cpm"
	"cpmfs/diskimage"
)

var (
	userNumber   uint8
	systemFormat bool
)

var rootCmd = &cobra.Command{
	Use:   "cpmls",
	Short: "Inspect CP/M 2.2 directories on Amstrad CPC .dsk images",
}

var lsCmd = &cobra.Command{
	Use:                   "ls FILE",
	Short:                 "Displays the disk directory (catalog)",
	Long:                  `Reads and displays the directory contents of a CPC-format .dsk image.`,
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLs(args[0])
	},
}

var catCmd = &cobra.Command{
	Use:                   "cat FILE NAME",
	Short:                 "Writes one file's contents to stdout",
	Long:                  `Reads the directory of a CPC-format .dsk image and streams NAME to stdout.`,
	Args:                  cobra.ExactArgs(2),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCat(args[0], args[1])
	},
}

func init() {
	rootCmd.PersistentFlags().Uint8VarP(&userNumber, "user", "u", 0, "CP/M user number (0-15)")
	rootCmd.PersistentFlags().BoolVar(&systemFormat, "system", false, "use the bootable System-format geometry instead of Data-format")
	rootCmd.AddCommand(lsCmd, catCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openFileSystem(path string) (*cpm.FileSystem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := diskimage.Open(f)
	if err != nil {
		return nil, err
	}

	attrs := diskimage.AmstradCPCAttributes()
	if systemFormat {
		attrs = diskimage.AmstradCPCSystemAttributes()
	}

	return cpm.New(attrs, img.ReadSector, nil)
}

func runLs(path string) error {
	fs, err := openFileSystem(path)
	if err != nil {
		return err
	}
	defer fs.Close()

	var records []cpm.DirEntry
	it := fs.Iterator()
	for {
		rec, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if rec.User != userNumber {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })

	const blockSize = 1024
	usedBlocks := 0
	for _, rec := range records {
		kb := (rec.Size + blockSize - 1) / blockSize
		usedBlocks += kb
		fmt.Printf("%-12s %8s %s\n", rec.Name, humanize.Bytes(uint64(rec.Size)), flagString(rec))
	}

	maxBlocks := fs.Capacity() / blockSize
	fmt.Printf("\n%d blocks free\n", maxBlocks-usedBlocks)
	return nil
}

func flagString(rec cpm.DirEntry) string {
	s := []byte("---")
	if rec.ReadOnly {
		s[0] = 'r'
	}
	if rec.System {
		s[1] = 's'
	}
	if rec.Archived {
		s[2] = 'a'
	}
	return string(s)
}

func runCat(path, name string) error {
	fs, err := openFileSystem(path)
	if err != nil {
		return err
	}
	defer fs.Close()

	f, err := fs.Open(name, userNumber)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(os.Stdout, f)
	return err
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ayraqutub/FileSystemSimulator/blockdev"
	"github.com/ayraqutub/FileSystemSimulator/fsys"
	"github.com/ayraqutub/FileSystemSimulator/imagefile"
	"github.com/ayraqutub/FileSystemSimulator/shell"
	"github.com/ayraqutub/FileSystemSimulator/superblock"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.App{
		Name:  "fsim",
		Usage: "Work with 128 KiB flat-filesystem volume images",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Execute a command script against volume images",
				Action:    runScript,
				ArgsUsage: "SCRIPT",
			},
			{
				Name:      "mkfs",
				Usage:     "Create a blank formatted volume image",
				Action:    makeImage,
				ArgsUsage: "IMAGE",
			},
			{
				Name:      "inspect",
				Usage:     "Dump the inode table of a volume image as CSV",
				Action:    inspectImage,
				ArgsUsage: "IMAGE",
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func runScript(context *cli.Context) error {
	if context.NArg() != 1 {
		fmt.Fprintln(context.App.ErrWriter, "Command Error: , 0")
		return cli.Exit("", 1)
	}

	fs := fsys.New()
	defer fs.Close()

	interp := shell.New(fs, context.App.Writer, context.App.ErrWriter)
	if err := interp.Run(context.Args().First()); err != nil {
		return cli.Exit("", 1)
	}
	return nil
}

func makeImage(context *cli.Context) error {
	if context.NArg() != 1 {
		return fmt.Errorf("mkfs takes exactly one argument, got %d", context.NArg())
	}
	return imagefile.Format(context.Args().First())
}

func inspectImage(context *cli.Context) error {
	if context.NArg() != 1 {
		return fmt.Errorf("inspect takes exactly one argument, got %d", context.NArg())
	}
	path := context.Args().First()

	dev, err := blockdev.Open(path)
	if err != nil {
		return err
	}
	defer dev.Close()

	sb, err := superblock.Load(dev)
	if err != nil {
		return err
	}
	if err := sb.Validate(path); err != nil {
		return err
	}

	dump, err := imagefile.DumpCSV(sb)
	if err != nil {
		return err
	}
	fmt.Fprint(context.App.Writer, dump)
	return nil
}

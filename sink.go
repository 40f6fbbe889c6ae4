package main

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/atotto/clipboard"
	log "github.com/sirupsen/logrus"
)

type sinkKind int

const (
	sinkStdout sinkKind = iota
	sinkFile
	sinkClipboard
	sinkPager
	sinkPDF
)

// chooseTextSink picks the single destination for text output.
func chooseTextSink(s Settings) sinkKind {
	switch {
	case s.PDF != "":
		return sinkPDF
	case s.Output != "":
		return sinkFile
	case s.Clipboard:
		return sinkClipboard
	case s.Pager:
		return sinkPager
	default:
		return sinkStdout
	}
}

// writeTextOutput sends rendered text to the sink chosen by the settings.
func writeTextOutput(s Settings, buf []byte) error {
	switch chooseTextSink(s) {
	case sinkPDF:
		log.Debugf("writing PDF to %s", s.PDF)
		return writePDF(string(buf), "", s.PDF)
	case sinkFile:
		log.Debugf("writing output to %s", s.Output)
		return writeFile(s.Output, buf)
	case sinkClipboard:
		if err := clipboard.WriteAll(string(buf)); err != nil {
			return fmt.Errorf("error writing to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Output copied to clipboard.")
		return nil
	case sinkPager:
		return pipeToPager(buf)
	default:
		_, err := os.Stdout.Write(buf)
		return err
	}
}

// writeJSONOutput sends JSON to dest: "-" is stdout, highlighted when color
// is on; a PDF destination gets a highlighted PDF.
func writeJSONOutput(dest, pdfPath string, buf []byte, color bool) error {
	if pdfPath != "" {
		return writePDF(string(buf), "json", pdfPath)
	}
	if dest != "-" {
		log.Debugf("writing JSON to %s", dest)
		return writeFile(dest, buf)
	}
	if color {
		return highlight(os.Stdout, string(buf), "json")
	}
	_, err := os.Stdout.Write(buf)
	return err
}

func highlight(w io.Writer, source, lexer string) error {
	if err := quick.Highlight(w, source, lexer, "terminal256", "monokai"); err != nil {
		return fmt.Errorf("error highlighting output: %w", err)
	}
	return nil
}

// writeFile writes buf to path, gzip-compressed when path ends in ".gz".
func writeFile(path string, buf []byte) error {
	if !strings.EqualFold(filepath.Ext(path), ".gz") {
		if err := os.WriteFile(path, buf, 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", path, err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file %s: %w", path, err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("error compressing to %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("error compressing to %s: %w", path, err)
	}
	return f.Close()
}

// pipeToPager runs $PAGER, or less -R, with buf on its stdin.
func pipeToPager(buf []byte) error {
	name, args := "less", []string{"-R"}
	if pager := strings.Fields(os.Getenv("PAGER")); len(pager) > 0 {
		name, args = pager[0], pager[1:]
	}
	log.Debugf("piping output to %s", name)

	cmd := exec.Command(name, args...)
	cmd.Stdin = bytes.NewReader(buf)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("error running pager %s: %w", name, err)
	}
	return nil
}

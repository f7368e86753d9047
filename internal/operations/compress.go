package operations

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const zstSuffix = ".zst"

// CompressZstd compresses inputPath to inputPath + ".zst" and removes the
// original, returning the compressed path.
func CompressZstd(inputPath string) (string, error) {
	outputPath := inputPath + zstSuffix

	inFile, err := os.Open(inputPath)
	if err != nil {
		return "", fmt.Errorf("open input file: %w", err)
	}
	defer inFile.Close()

	outFile, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	defer outFile.Close()

	writer, err := zstd.NewWriter(outFile)
	if err != nil {
		return "", fmt.Errorf("create zstd writer: %w", err)
	}

	if _, err := io.Copy(writer, inFile); err != nil {
		writer.Close()
		return "", fmt.Errorf("compress file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("flush zstd writer: %w", err)
	}

	if err := os.Remove(inputPath); err != nil {
		return "", fmt.Errorf("remove original file: %w", err)
	}
	return outputPath, nil
}

// DecompressZstd expands inputPath next to itself with the ".zst" suffix
// dropped, leaving the compressed file in place, and returns the expanded
// path.
func DecompressZstd(inputPath string) (string, error) {
	outputPath := strings.TrimSuffix(inputPath, zstSuffix)
	if outputPath == inputPath {
		return "", fmt.Errorf("%q does not carry the %s suffix", inputPath, zstSuffix)
	}

	inFile, err := os.Open(inputPath)
	if err != nil {
		return "", fmt.Errorf("open compressed file: %w", err)
	}
	defer inFile.Close()

	reader, err := zstd.NewReader(inFile)
	if err != nil {
		return "", fmt.Errorf("create zstd reader: %w", err)
	}
	defer reader.Close()

	outFile, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, reader); err != nil {
		return "", fmt.Errorf("decompress file: %w", err)
	}
	return outputPath, nil
}

// package formatter provides functions to export collection data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Flammans/artanova/internal/models"
	"github.com/Flammans/artanova/internal/shared"
)

// ExportToCSV converts a Collection to CSV format with columns: ID, Title, Type, Origin, Artist, Date, URL
func ExportToCSV(collection *models.Collection) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Type", "Origin", "Artist", "Date", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, artwork := range collection.Artworks() {
		record := []string{
			strconv.Itoa(artwork.ID),
			artwork.Title,
			artwork.Type,
			artwork.Origin,
			artwork.Artist,
			artwork.Date,
			artwork.URL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Collection to Markdown format with optional cover image
func ExportToMarkdown(collection *models.Collection, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", collection.Title))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	artworks := collection.Artworks()
	buf.WriteString(fmt.Sprintf("**Artworks**: %d\n\n", len(artworks)))

	buf.WriteString("## Artworks\n\n")
	for i, artwork := range artworks {
		detail := artworkDetail(artwork)
		if detail != "" {
			detail = fmt.Sprintf(" (%s)", detail)
		}
		buf.WriteString(fmt.Sprintf("%d. [%s](%s)%s\n", i+1, artwork.Title, artwork.URL, detail))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Collection to plain text format
func ExportToText(collection *models.Collection) ([]byte, error) {
	var buf bytes.Buffer

	artworks := collection.Artworks()
	buf.WriteString(fmt.Sprintf("Collection: %s\n", collection.Title))
	buf.WriteString(fmt.Sprintf("Artworks: %d\n\n", len(artworks)))

	for i, artwork := range artworks {
		detail := artworkDetail(artwork)
		if detail != "" {
			detail = " - " + detail
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, artwork.Title, detail))
	}

	return buf.Bytes(), nil
}

// artworkDetail joins the optional artist and origin fields for display.
func artworkDetail(artwork models.Artwork) string {
	switch {
	case artwork.Artist != "" && artwork.Origin != "":
		return fmt.Sprintf("%s, %s", artwork.Artist, artwork.Origin)
	case artwork.Artist != "":
		return artwork.Artist
	case artwork.Origin != "":
		return artwork.Origin
	default:
		return ""
	}
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// collectionMetadata is the subset of a collection written alongside exports.
type collectionMetadata struct {
	UUID     string `json:"uuid"`
	Title    string `json:"title"`
	UserID   int    `json:"userId"`
	Artworks int    `json:"artworks"`
}

// ToMetadataJSON generates a JSON representation of collection metadata (without elements)
func ToMetadataJSON(collection models.Collection) ([]byte, error) {
	meta := collectionMetadata{
		UUID:     collection.UUID,
		Title:    collection.Title,
		UserID:   collection.UserID,
		Artworks: len(collection.Elements),
	}
	return shared.MarshalJSON(meta, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	ArtworksFile string
	MetadataFile string
}

// WriteCSVExport exports a collection to CSV format with accompanying metadata JSON file.
//
// Defaults to the collection UUID as the base filename & creates {base}_artworks.csv and {base}_metadata.json
func WriteCSVExport(collection *models.Collection, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = collection.UUID
	}

	csvData, err := ExportToCSV(collection)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	artworksFile := baseFilepath + "_artworks.csv"
	if err := os.WriteFile(artworksFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(*collection)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		ArtworksFile: artworksFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a collection to Markdown format in a dedicated directory.
//
// Directory name defaults to the collection UUID.
// The imageURL parameter is optional - if provided, attempts to download the cover image.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(collection *models.Collection, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = collection.UUID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(collection, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a collection to plain text format.
//
// Defaults to {collection.UUID}_artworks.txt as the filename.
func WriteTextExport(collection *models.Collection, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_artworks.txt", collection.UUID)
	}

	textData, err := ExportToText(collection)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

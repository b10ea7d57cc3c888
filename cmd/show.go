package cmd

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"golang.org/x/term"

	"github.com/arcanaland/cardconv/internal/card"
	"github.com/arcanaland/cardconv/internal/deck"
	"github.com/arcanaland/cardconv/internal/table"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [csv_file] [card_id]",
	Short: "Display a converted card",
	Long: `Show converts the table and prints one card as it will appear in the output.

With --images (or image_dir in the config) pointing at a directory of card
images named after each card's ImageKey, the image is drawn beside the text
with ANSI half-block characters.

Examples:
  cardconv show cards.csv 001
  cardconv show --images ./images cards.csv 025`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath, cardID := args[0], args[1]

		cfg, log, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		imageDir, _ := cmd.Flags().GetString("images")
		if imageDir == "" {
			imageDir = cfg.ImageDir
		}

		t, err := table.ReadFile(csvPath, cfg.TableOptions())
		if err != nil {
			return err
		}

		d, err := deck.Convert(t, log)
		if err != nil {
			return fmt.Errorf("error converting %s: %w", csvPath, err)
		}

		c, err := d.GetCard(cardID)
		if err != nil {
			return fmt.Errorf("error getting card: %w", err)
		}

		var ansiArt string
		if imageDir != "" && c.ImageKey != "" {
			imagePath, err := findCardImage(imageDir, c.ImageKey)
			if err != nil {
				log.Warn("no image for card", "id", c.ID, "imageKey", c.ImageKey)
			} else if ansiArt, err = generateAnsiArt(imagePath); err != nil {
				log.Warn("could not render image", "path", imagePath, "err", err)
			}
		}

		displayCard(cmd.OutOrStdout(), c, ansiArt)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("images", "i", "", "Directory of card images named by ImageKey")
}

// findCardImage looks for <imageKey>.<ext> in the image directory
func findCardImage(imageDir, imageKey string) (string, error) {
	extensions := []string{".png", ".jpg", ".jpeg", ".gif"}

	for _, ext := range extensions {
		path := filepath.Join(imageDir, imageKey+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no image found for %s", imageKey)
}

// generateAnsiArt converts an image file to ANSI art
func generateAnsiArt(imagePath string) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	return imageToAnsi(img, 30, 21), nil
}

// imageToAnsi draws the image with upper half blocks, two pixel rows per line
func imageToAnsi(img image.Image, width, height int) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			col1, _ := colorful.MakeColor(getColorAt(resized, x, y))
			col2, _ := colorful.MakeColor(getColorAt(resized, x+1, y))
			col3, _ := colorful.MakeColor(getColorAt(resized, x, y+1))
			col4, _ := colorful.MakeColor(getColorAt(resized, x+1, y+1))

			// Top pixels as foreground, bottom pixels as background
			fg := colorfulToColor(averageColor(col1, col2))
			bg := colorfulToColor(averageColor(col3, col4))

			buffer.WriteString(ansiColorString('▀', fg, bg))
		}
		buffer.WriteString("\n")
	}

	return strings.TrimSuffix(buffer.String(), "\n")
}

// getColorAt returns the color at a specific coordinate
func getColorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255} // Black for out-of-bounds
}

// averageColor calculates the average of multiple colors
func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// colorfulToColor converts a colorful.Color to a standard color.Color
func colorfulToColor(c colorful.Color) color.Color {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ansiColorString formats a character with 24-bit ANSI color codes
func ansiColorString(char rune, fg, bg color.Color) string {
	r1, g1, b1, _ := fg.RGBA()
	r2, g2, b2, _ := bg.RGBA()

	// RGBA() returns values in range 0-65535
	r1, g1, b1 = r1>>8, g1>>8, b1>>8
	r2, g2, b2 = r2>>8, g2>>8, b2>>8

	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		r1, g1, b1, r2, g2, b2, char)
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// cardInfoLines renders the card fields, wrapping long text to width
func cardInfoLines(c *card.Card, width int) []string {
	label := colorize.CyanString
	value := func(s string) string { return colorize.HiWhiteString("%s", s) }

	lines := []string{
		label("Card:     ") + value(c.Name),
		label("ID:       ") + value(c.ID),
	}

	kind := c.CardType
	if c.EvolutionStage != "" {
		kind += " · " + c.EvolutionStage
	}
	if kind != "" {
		lines = append(lines, label("Kind:     ")+value(kind))
	}
	if c.Type != "" {
		lines = append(lines, label("Type:     ")+value(c.Type))
	}
	if c.HP > 0 {
		lines = append(lines, label("HP:       ")+value(strconv.Itoa(c.HP)))
	}
	if c.Weakness != "" {
		lines = append(lines, label("Weakness: ")+value(c.Weakness))
	}
	lines = append(lines, label("Retreat:  ")+value(strconv.Itoa(c.RetreatCost)))
	if c.Pack != "" {
		lines = append(lines, label("Pack:     ")+value(c.Pack))
	}

	if c.AbilityName != "" || c.AbilityEffect != "" {
		lines = append(lines, "", label("Ability: ")+colorize.HiMagentaString("%s", c.AbilityName))
		if c.AbilityEffect != "" {
			lines = append(lines, wrapText(c.AbilityEffect, width)...)
		}
	}

	for _, m := range c.Moves {
		lines = append(lines, "", colorize.HiYellowString("%s", m.Name)+"  "+value(strconv.Itoa(m.Damage)))
		if m.Effect != "" {
			lines = append(lines, wrapText(m.Effect, width)...)
		}
	}

	if len(c.Tags) > 0 {
		lines = append(lines, "", label("Tags: ")+value(strings.Join(c.Tags, ", ")))
	}

	return lines
}

// displayCard prints the card information, with ANSI art on the left if given
func displayCard(w io.Writer, c *card.Card, ansiArt string) {
	var ansiLines []string
	maxAnsiWidth := 0
	if ansiArt != "" {
		ansiLines = strings.Split(ansiArt, "\n")
		for _, line := range ansiLines {
			if visibleWidth := len([]rune(stripAnsi(line))); visibleWidth > maxAnsiWidth {
				maxAnsiWidth = visibleWidth
			}
		}
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	spacing := 4
	infoStartCol := 0
	if maxAnsiWidth > 0 {
		infoStartCol = maxAnsiWidth + spacing
	}

	infoWidth := width - infoStartCol - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	infoLines := cardInfoLines(c, infoWidth)

	fmt.Fprintln(w)

	maxLines := max(len(ansiLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Fprint(w, "  ")
		if i < len(ansiLines) {
			fmt.Fprint(w, ansiLines[i])
			visibleWidth := len([]rune(stripAnsi(ansiLines[i])))
			fmt.Fprint(w, strings.Repeat(" ", infoStartCol-visibleWidth))
		} else {
			fmt.Fprint(w, strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Fprint(w, infoLines[i])
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

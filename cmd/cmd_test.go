package cmd

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardsCSV = "ID,Name,CardType,EvolutionStage,HP,Type,Weakness,RetreatCost,AbilityName,Ability,Tags,ImageKey,Move1Name,Move1Damage,Move1Effect,Move2Name,Move2Damage,Move2Effect\n" +
	"001,Pikachu,Pokémon,Basic,60,Lightning,Fighting,1,,,\"Electric,Basic\",pikachu,Thunder Shock,20,,,,\n" +
	"002,Raichu,Pokémon,Stage 1,N/A,Lightning,Fighting,1,Static,Paralyzes attackers,,,,,Paralyze,Thunder,140,\n"

// runCmd executes the root command with an empty config home
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCmdWithConfigHome(t, t.TempDir(), args...)
}

func runCmdWithConfigHome(t *testing.T, configHome string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", configHome)
	for _, c := range []struct{ cmd, flag string }{
		{"convert", "output"}, {"convert", "format"}, {"show", "images"},
	} {
		sub, _, err := RootCmd.Find([]string{c.cmd})
		require.NoError(t, err)
		require.NoError(t, sub.Flags().Set(c.flag, ""))
	}

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "cards.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConvertCommand(t *testing.T) {
	t.Run("writes the card document", func(t *testing.T) {
		dir := t.TempDir()
		csvPath := writeCSV(t, dir, cardsCSV)
		outPath := filepath.Join(dir, "output.json")

		out, err := runCmd(t, "convert", "--output", outPath, csvPath)
		require.NoError(t, err)
		assert.Contains(t, out, "Wrote 2 cards to")

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"cardType": "Pokémon"`)

		var doc struct {
			Cards []struct {
				ID    string   `json:"id"`
				HP    int      `json:"hp"`
				Tags  []string `json:"tags"`
				Moves []struct {
					Name   string `json:"name"`
					Damage int    `json:"damage"`
					Effect string `json:"effect"`
				} `json:"moves"`
				AbilityEffect string `json:"abilityEffect"`
			} `json:"cards"`
		}
		require.NoError(t, json.Unmarshal(data, &doc))
		require.Len(t, doc.Cards, 2)

		pikachu := doc.Cards[0]
		assert.Equal(t, "001", pikachu.ID)
		assert.Equal(t, 60, pikachu.HP)
		assert.Equal(t, []string{"Electric", "Basic"}, pikachu.Tags)
		require.Len(t, pikachu.Moves, 1)
		assert.Equal(t, "Thunder Shock", pikachu.Moves[0].Name)
		assert.Equal(t, 20, pikachu.Moves[0].Damage)

		raichu := doc.Cards[1]
		assert.Equal(t, 0, raichu.HP)
		assert.Empty(t, raichu.Tags)
		assert.Equal(t, "Paralyzes attackers", raichu.AbilityEffect)
		require.Len(t, raichu.Moves, 2)
		assert.Equal(t, "", raichu.Moves[0].Name)
		assert.Equal(t, "Paralyze", raichu.Moves[0].Effect)
		assert.Equal(t, 140, raichu.Moves[1].Damage)
	})

	t.Run("is repeatable", func(t *testing.T) {
		dir := t.TempDir()
		csvPath := writeCSV(t, dir, cardsCSV)
		first := filepath.Join(dir, "a.json")
		second := filepath.Join(dir, "b.json")

		_, err := runCmd(t, "convert", "-o", first, csvPath)
		require.NoError(t, err)
		_, err = runCmd(t, "convert", "-o", second, csvPath)
		require.NoError(t, err)

		a, _ := os.ReadFile(first)
		b, _ := os.ReadFile(second)
		assert.Equal(t, a, b)
	})

	t.Run("yaml format", func(t *testing.T) {
		dir := t.TempDir()
		outPath := filepath.Join(dir, "cards.yaml")

		_, err := runCmd(t, "convert", "-o", outPath, "-f", "yaml", writeCSV(t, dir, cardsCSV))
		require.NoError(t, err)

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "cards:"))
	})

	t.Run("requires an input file", func(t *testing.T) {
		_, err := runCmd(t, "convert")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CSV file")
	})

	t.Run("rejects missing required columns", func(t *testing.T) {
		dir := t.TempDir()
		_, err := runCmd(t, "convert", "-o", filepath.Join(dir, "out.json"), writeCSV(t, dir, "ID,Name\n1,a\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required column")

		_, statErr := os.Stat(filepath.Join(dir, "out.json"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("falls back to defaults when the config is unusable", func(t *testing.T) {
		dir := t.TempDir()
		csvPath := writeCSV(t, dir, cardsCSV)
		outPath := filepath.Join(dir, "out.json")

		notDir := filepath.Join(dir, "notadir")
		require.NoError(t, os.WriteFile(notDir, nil, 0644))

		out, err := runCmdWithConfigHome(t, notDir, "convert", "-o", outPath, csvPath)
		require.NoError(t, err)
		assert.Contains(t, out, "using default settings")
		assert.Contains(t, out, "Wrote 2 cards to")

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"id": "001"`)
	})

	t.Run("does not create a config file", func(t *testing.T) {
		dir := t.TempDir()
		configHome := filepath.Join(dir, "config")

		_, err := runCmdWithConfigHome(t, configHome, "convert", "-o", filepath.Join(dir, "out.json"), writeCSV(t, dir, cardsCSV))
		require.NoError(t, err)

		_, statErr := os.Stat(configHome)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		dir := t.TempDir()
		_, err := runCmd(t, "convert", "-f", "xml", writeCSV(t, dir, cardsCSV))
		assert.Error(t, err)
	})
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid table", func(t *testing.T) {
		out, err := runCmd(t, "validate", writeCSV(t, t.TempDir(), cardsCSV))
		require.NoError(t, err)
		assert.Contains(t, out, "can be converted")
		assert.Contains(t, out, "Pack")
	})

	t.Run("invalid table", func(t *testing.T) {
		out, err := runCmd(t, "validate", writeCSV(t, t.TempDir(), "Name\nPikachu\n"))
		require.Error(t, err)
		assert.Contains(t, out, "missing required columns")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runCmd(t, "validate", filepath.Join(t.TempDir(), "none.csv"))
		assert.Error(t, err)
	})
}

func TestShowCommand(t *testing.T) {
	t.Run("prints the card", func(t *testing.T) {
		out, err := runCmd(t, "show", writeCSV(t, t.TempDir(), cardsCSV), "002")
		require.NoError(t, err)
		assert.Contains(t, out, "Raichu")
		assert.Contains(t, out, "Paralyzes attackers")
		assert.Contains(t, out, "Thunder")
	})

	t.Run("draws the card image", func(t *testing.T) {
		dir := t.TempDir()
		img := image.NewRGBA(image.Rect(0, 0, 8, 8))
		for x := 0; x < 8; x++ {
			for y := 0; y < 8; y++ {
				img.Set(x, y, color.RGBA{R: 255, G: 220, A: 255})
			}
		}
		f, err := os.Create(filepath.Join(dir, "pikachu.png"))
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())

		out, err := runCmd(t, "show", "--images", dir, writeCSV(t, dir, cardsCSV), "001")
		require.NoError(t, err)
		assert.Contains(t, out, "▀")
		assert.Contains(t, out, "Pikachu")
	})

	t.Run("unknown card", func(t *testing.T) {
		_, err := runCmd(t, "show", writeCSV(t, t.TempDir(), cardsCSV), "999")
		assert.Error(t, err)
	})
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)

	RootCmd.SetArgs([]string{"config", "init"})
	require.NoError(t, RootCmd.Execute())
	assert.Contains(t, out.String(), "Config file initialized at:")
	_, err := os.Stat(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "cardconv", "config.toml"))
	require.NoError(t, err)

	RootCmd.SetArgs([]string{"config", "set", "format", "yaml"})
	require.NoError(t, RootCmd.Execute())

	RootCmd.SetArgs([]string{"config", "show"})
	require.NoError(t, RootCmd.Execute())
	assert.Contains(t, out.String(), `format = "yaml"`)

	RootCmd.SetArgs([]string{"config", "set", "nope", "x"})
	assert.Error(t, RootCmd.Execute())
}

func TestImageToAnsi(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	art := imageToAnsi(img, 2, 2)

	lines := strings.Split(art, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "▀▀", stripAnsi(lines[0]))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{"Flip a coin. If", "heads, the", "Defending Pokémon", "is now Paralyzed."},
		wrapText("Flip a coin. If heads, the Defending Pokémon is now Paralyzed.", 18))
	assert.Equal(t, []string{""}, wrapText("", 20))
}

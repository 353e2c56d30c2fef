package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lumina-tools/planner/internal/build"
	"github.com/lumina-tools/planner/internal/shareurl"
	"github.com/lumina-tools/planner/internal/token"
)

// buildFile is the YAML shape `planner encode` reads and `planner decode`
// writes. Item references may be given as "item-7" or bare "7".
type buildFile struct {
	Title     string            `yaml:"title,omitempty"`
	Comment   string            `yaml:"comment,omitempty"`
	Character int               `yaml:"character,omitempty"`
	Skills    []int             `yaml:"skills,omitempty"`
	Luminas   []string          `yaml:"luminas,omitempty"`
	Pictos    []string          `yaml:"pictos,omitempty"`
	Levels    map[string]string `yaml:"levels,omitempty"`
}

func (f buildFile) state() build.State {
	s := build.NewState()
	s.Title = f.Title
	s.Comment = f.Comment
	s.CharacterID = f.Character
	s.SkillIDs = append(s.SkillIDs, f.Skills...)
	for _, id := range f.Luminas {
		s.Modifiers = append(s.Modifiers, normalizeUIID(id))
	}
	for _, id := range f.Pictos {
		s.Attributes = append(s.Attributes, normalizeUIID(id))
	}
	for id, level := range f.Levels {
		s.Levels[normalizeUIID(id)] = level
	}
	return s
}

func fileFromState(s build.State) buildFile {
	return buildFile{
		Title:     s.Title,
		Comment:   s.Comment,
		Character: s.CharacterID,
		Skills:    s.SkillIDs,
		Luminas:   s.Modifiers,
		Pictos:    s.Attributes,
		Levels:    s.Levels,
	}
}

var encodeCmd = &cobra.Command{
	Use:   "encode <build.yml>",
	Short: "Encode a build file into a share token and URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading build file: %w", err)
		}

		var f buildFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return fmt.Errorf("parsing build file: %w", err)
		}

		state := f.state()
		tok := token.Encode(state)
		if tok == "" {
			fmt.Println("The build is empty; an empty build has no token.")
			return nil
		}

		fmt.Println(tok)

		if cfg, err := loadConfig(); err == nil {
			if base, err := baseURL(cfg); err == nil {
				fmt.Println(shareurl.Build(base, state).String())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

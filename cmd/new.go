package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/lumina-tools/planner/internal/build"
	"github.com/lumina-tools/planner/internal/catalog"
	"github.com/lumina-tools/planner/internal/shareurl"
	"github.com/lumina-tools/planner/internal/token"
)

const doneChoice = "(done)"

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Put a build together interactively and print its share URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := openCatalog(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if len(cat.Characters) == 0 && len(cat.Items) == 0 {
			return fmt.Errorf("the catalog is empty; run `planner catalog import` first")
		}

		state := build.NewState()

		if state, err = pickCharacter(cat, state); err != nil {
			return err
		}
		if state, err = pickSkills(cat, state); err != nil {
			return err
		}
		if state, err = pickItems(cat, state); err != nil {
			return err
		}

		titlePrompt := promptui.Prompt{Label: "Build title (blank to skip)"}
		title, err := titlePrompt.Run()
		if err != nil {
			return fmt.Errorf("title: %w", err)
		}
		if state, err = build.Apply(state, build.Intent{Op: build.OpSetTitle, Text: title}); err != nil {
			return err
		}

		tok := token.Encode(state)
		if tok == "" {
			fmt.Println("Nothing selected; an empty build has no share URL.")
			return nil
		}

		base, err := baseURL(cfg)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println("Token:", tok)
		fmt.Println("Share:", shareurl.Build(base, state).String())
		return nil
	},
}

func pickCharacter(cat *catalog.Catalog, state build.State) (build.State, error) {
	if len(cat.Characters) == 0 {
		return state, nil
	}

	names := []string{"(no character)"}
	for _, ch := range cat.Characters {
		names = append(names, ch.Name)
	}
	sel := promptui.Select{Label: "Character", Items: names, Size: 12}
	idx, _, err := sel.Run()
	if err != nil {
		return state, fmt.Errorf("character: %w", err)
	}
	if idx == 0 {
		return state, nil
	}
	return build.Apply(state, build.Intent{
		Op:          build.OpSelectCharacter,
		CharacterID: cat.Characters[idx-1].ID,
	})
}

func pickSkills(cat *catalog.Catalog, state build.State) (build.State, error) {
	ch := cat.Character(state.CharacterID)
	if ch == nil || len(ch.Skills) == 0 {
		return state, nil
	}

	for {
		choices := []string{doneChoice}
		var ids []int
		for _, sk := range ch.Skills {
			if state.HasSkill(sk.ID) {
				continue
			}
			choices = append(choices, fmt.Sprintf("%s (cost %d)", sk.Name, sk.Cost))
			ids = append(ids, sk.ID)
		}
		if len(ids) == 0 {
			return state, nil
		}

		sel := promptui.Select{Label: "Add skill", Items: choices, Size: 12}
		idx, _, err := sel.Run()
		if err != nil {
			return state, fmt.Errorf("skill: %w", err)
		}
		if idx == 0 {
			return state, nil
		}

		state, err = build.Apply(state, build.Intent{Op: build.OpToggleSkill, SkillID: ids[idx-1]})
		if err != nil {
			return state, err
		}
	}
}

func pickItems(cat *catalog.Catalog, state build.State) (build.State, error) {
	if len(cat.Items) == 0 {
		return state, nil
	}

	for {
		choices := []string{doneChoice}
		var items []catalog.Item
		for _, it := range cat.Items {
			uiID := it.UIID()
			if state.HasModifier(uiID) || state.HasAttribute(uiID) {
				continue
			}
			choices = append(choices, fmt.Sprintf("%s (cost %d)", it.Name, it.Cost))
			items = append(items, it)
		}
		if len(items) == 0 {
			return state, nil
		}

		sel := promptui.Select{Label: "Add item", Items: choices, Size: 12}
		idx, _, err := sel.Run()
		if err != nil {
			return state, fmt.Errorf("item: %w", err)
		}
		if idx == 0 {
			return state, nil
		}
		item := items[idx-1]

		roleSel := promptui.Select{
			Label: "Equip as",
			Items: []string{"lumina (cost-tracked)", "picto (attribute-tracked)"},
		}
		roleIdx, _, err := roleSel.Run()
		if err != nil {
			return state, fmt.Errorf("role: %w", err)
		}
		op := build.OpToggleModifier
		if roleIdx == 1 {
			op = build.OpToggleAttribute
		}

		state, err = build.Apply(state, build.Intent{Op: op, ItemID: item.UIID()})
		if err != nil {
			return state, err
		}

		if state, err = pickLevel(item, state); err != nil {
			return state, err
		}
	}
}

func pickLevel(item catalog.Item, state build.State) (build.State, error) {
	if len(item.Levels) < 2 {
		return state, nil
	}

	choices := []string{"(highest)"}
	for _, lv := range item.Levels {
		choices = append(choices, lv.Label)
	}
	sel := promptui.Select{Label: "Level for " + item.Name, Items: choices}
	idx, _, err := sel.Run()
	if err != nil {
		return state, fmt.Errorf("level: %w", err)
	}
	if idx == 0 {
		return state, nil
	}
	return build.Apply(state, build.Intent{
		Op:     build.OpSetLevel,
		ItemID: item.UIID(),
		Level:  item.Levels[idx-1].Label,
	})
}

func init() {
	rootCmd.AddCommand(newCmd)
}

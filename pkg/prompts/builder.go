package prompts

import (
	"fmt"
	"strings"

	"github.com/kvhuynh/sovereign/pkg/turn"
)

// Builder assembles the game-master prompt for one turn request. It
// separates prompt construction from session state management.
type Builder struct {
	req *turn.Request
}

// New creates a prompt builder for the given request.
func New(req *turn.Request) *Builder {
	return &Builder{req: req}
}

// Build renders the full prompt: role, setting, current state context,
// recent history, the player's order, rules and reminders.
func (b *Builder) Build() (string, error) {
	if b.req == nil {
		return "", fmt.Errorf("turn request is required")
	}

	var sb strings.Builder
	sb.WriteString(SystemRole)
	sb.WriteString("\n\nSETTING:\n")
	b.writeSetting(&sb)
	sb.WriteString("\nCURRENT RESOURCES:\n")
	b.writeResources(&sb)
	sb.WriteString("\nPOLITICS:\n")
	b.writePolitics(&sb)
	sb.WriteString("\nACTIVE BUFFS: ")
	sb.WriteString(b.buffLine())
	sb.WriteString("\nOPEN RUMORS:\n")
	sb.WriteString(b.rumorLines())
	sb.WriteString("\nRECENT HISTORY:\n")
	b.writeHistory(&sb)

	fmt.Fprintf(&sb, "\nPLAYER ORDER: %q\n", b.req.Action)

	if b.req.IsInit() {
		sb.WriteString("\n" + InitInstructions + "\n")
	}

	sb.WriteString("\n" + GameRules + "\n\n" + ResponseReminder)
	return sb.String(), nil
}

func (b *Builder) writeSetting(sb *strings.Builder) {
	s := b.req.Settings
	fmt.Fprintf(sb, "- World: %s\n", s.WorldTheme)
	fmt.Fprintf(sb, "- Kingdom: %s (Ruler: %s)\n", s.KingdomName, s.LeaderName)
	if s.Background != "" {
		fmt.Fprintf(sb, "- Starting background: %s\n", s.Background)
	}
	if s.LeaderDescription != "" {
		fmt.Fprintf(sb, "- Ruler description: %s\n", s.LeaderDescription)
	}
	fmt.Fprintf(sb, "- Other powers: %s\n", b.entityLine())
}

func (b *Builder) writeResources(sb *strings.Builder) {
	st := b.req.Stats
	fmt.Fprintf(sb, "- Calendar: Year %d, Month %d\n", st.Year, st.Month)
	fmt.Fprintf(sb, "- Economy: Gold %d, EP %d, Tax %s\n", st.Gold, st.EconomicPower, st.TaxRate)
	fmt.Fprintf(sb, "- Stores: Food %d, Wood %d, Stone %d, Supplies %d\n", st.Food, st.Wood, st.Stone, st.Supplies)
	fmt.Fprintf(sb, "- People: Population %d, Manpower %d, Army %d, Happiness %d\n", st.Population, st.Manpower, st.Army, st.Happiness)
}

func (b *Builder) writePolitics(sb *strings.Builder) {
	if len(b.req.Heritage.RoyalFamily) == 0 && len(b.req.Heritage.Divisions) == 0 {
		sb.WriteString("Not established yet.\n")
		return
	}
	for _, p := range b.req.Heritage.RoyalFamily {
		fmt.Fprintf(sb, "- %s (%s, %s) [ID:%s]\n", p.Name, p.FamilyRelation, p.Status, p.ID)
	}
	for _, d := range b.req.Heritage.Divisions {
		fmt.Fprintf(sb, "- %s: %s [ID:%s]\n", d.Type, d.Name, d.ID)
	}
}

func (b *Builder) entityLine() string {
	if len(b.req.World.Entities) == 0 {
		return "none known yet"
	}
	parts := make([]string, 0, len(b.req.World.Entities))
	for _, e := range b.req.World.Entities {
		liege := e.LiegeID
		if liege == "" {
			liege = "None"
		}
		parts = append(parts, fmt.Sprintf("%s (ID:%s, Relation:%s, Liege:%s)", e.Name, e.ID, e.Relation, liege))
	}
	return strings.Join(parts, ", ")
}

func (b *Builder) buffLine() string {
	if len(b.req.ActiveBuffs) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(b.req.ActiveBuffs))
	for _, buff := range b.req.ActiveBuffs {
		parts = append(parts, fmt.Sprintf("%s (%s: %s) [ID:%s]", buff.Name, buff.Type, buff.Effect, buff.ID))
	}
	return strings.Join(parts, ", ")
}

// rumorLines lists only unresolved rumors; resolved ones are history.
func (b *Builder) rumorLines() string {
	var sb strings.Builder
	for _, r := range b.req.World.Rumors {
		if r.IsResolved {
			continue
		}
		fmt.Fprintf(&sb, "[ID:%s] %s (%s): %s\n", r.ID, r.Title, r.Type, r.Content)
	}
	if sb.Len() == 0 {
		return "none\n"
	}
	return sb.String()
}

func (b *Builder) writeHistory(sb *strings.Builder) {
	if len(b.req.History) == 0 {
		sb.WriteString("No history yet.\n")
		return
	}
	for _, line := range b.req.History {
		sb.WriteString(line + "\n")
	}
}

// BuildPrompt is a convenience wrapper for the common case.
func BuildPrompt(req *turn.Request) (string, error) {
	return New(req).Build()
}

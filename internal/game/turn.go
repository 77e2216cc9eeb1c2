package game

import (
	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game/rules"
	"github.com/thraizz/hearthsim/internal/game/tags"
	"go.uber.org/zap"
)

// EndTurn ends the current player's turn and starts the opponent's. The
// game ends in a tie once the turn limit is exceeded.
func (g *Game) EndTurn() error {
	if err := g.checkAction(true); err != nil {
		return err
	}
	return g.finish(g.endTurn())
}

func (g *Game) endTurn() error {
	cur := g.CurrentPlayer()
	if err := g.turns.Transition(rules.PhaseMainEnd); err != nil {
		return err
	}
	g.record(HistoryEntry{Action: "end_turn", Player: cur.Index})

	if err := g.FireEvent(Event{Type: rules.EventTurnEnd, Player: cur}); err != nil {
		return err
	}
	g.finishTurn(cur)
	if err := g.settle(); err != nil || g.Ended() {
		return err
	}

	turn := g.turns.Advance()
	if turn > g.cfg.MaxTurns {
		for _, p := range g.players {
			p.PlayState = rules.PlayStateTied
		}
		g.logger.Info("turn limit reached", zap.Int("max_turns", g.cfg.MaxTurns))
		g.endGame()
		return nil
	}

	next := g.CurrentPlayer()
	g.logger.Debug("turn start",
		zap.Int("turn", turn),
		zap.String("player", next.Name),
	)
	if err := g.beginTurn(next); err != nil {
		return err
	}
	if err := g.settle(); err != nil || g.Ended() {
		return err
	}
	return g.turns.Transition(rules.PhaseMainAction)
}

// finishTurn clears effects that last until end of turn.
func (g *Game) finishTurn(p *Player) {
	p.Mana.EndTurn()
	if p.Hero != nil {
		p.Hero.TempAttack = 0
	}
	for _, e := range p.Board {
		e.TempAttack = 0
	}
}

// beginTurn resets p's turn counters, fires on_turn_start and runs the
// start-of-turn bookkeeping.
func (g *Game) beginTurn(p *Player) error {
	p.Turn = TurnCounters{}
	if err := g.FireEvent(Event{Type: rules.EventTurnStart, Player: p}); err != nil {
		return err
	}
	return g.startTurn(p)
}

// startTurn grows and refills mana, readies p's characters, ticks location
// cooldowns and draws a card.
func (g *Game) startTurn(p *Player) error {
	p.Mana.StartTurn()
	if hp := p.HeroPower(); hp != nil {
		hp.UsedThisTurn = false
	}
	if p.Hero != nil {
		p.Hero.AttacksThisTurn = 0
		p.Hero.Frozen = false
	}
	for _, e := range p.Board {
		switch e.Type {
		case catalogue.TypeMinion:
			e.Exhausted = false
			e.AttacksThisTurn = 0
			e.Frozen = false
			e.Tags.Add(tags.TurnsInPlay, 1)
		case catalogue.TypeLocation:
			if e.Cooldown > 0 {
				e.Cooldown--
			}
		}
	}
	_, err := p.Draw(1)
	return err
}

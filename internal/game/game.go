package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game/rules"
	"github.com/thraizz/hearthsim/internal/game/tags"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

const (
	// CoinID is the card given to the second player.
	CoinID = "GAME_005"
	// DefaultHeroID is used for players set up without a hero.
	DefaultHeroID = "HERO_08"
)

// Config holds per-game limits.
type Config struct {
	MaxTurns          int
	MaxActionsPerTurn int
	StartingHealth    int
	// Seed drives every random decision in the game.
	Seed uint64
}

// DefaultConfig returns the standard limits.
func DefaultConfig() Config {
	return Config{
		MaxTurns:          89,
		MaxActionsPerTurn: 100,
		StartingHealth:    30,
	}
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithCatalogue sets the card catalogue. The default is catalogue.Default().
func WithCatalogue(c *catalogue.Catalogue) Option {
	return func(g *Game) {
		if c != nil {
			g.catalogue = c
		}
	}
}

// WithRegistry sets the effect registry. The default is empty, so every
// card is vanilla.
func WithRegistry(r *EffectRegistry) Option {
	return func(g *Game) {
		if r != nil {
			g.registry = r
		}
	}
}

// WithSeed overrides Config.Seed.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.cfg.Seed = seed
	}
}

// Game is a single two-player match. A Game is not safe for concurrent use;
// run independent games, or clones, on separate goroutines instead.
type Game struct {
	id        string
	cfg       Config
	logger    *zap.Logger
	catalogue *catalogue.Catalogue
	registry  *EffectRegistry

	rngSrc *rand.PCGSource
	rng    *rand.Rand

	nextEntityID int
	players      [2]*Player
	turns        rules.TurnManager
	triggers     triggerTable

	pendingDeaths []*Entity
	pending       *PendingChoice
	history       []HistoryEntry
	choice        int
	faulted       bool
}

// New creates a game in the deck-building phase.
func New(cfg Config, opts ...Option) *Game {
	def := DefaultConfig()
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = def.MaxTurns
	}
	if cfg.MaxActionsPerTurn <= 0 {
		cfg.MaxActionsPerTurn = def.MaxActionsPerTurn
	}
	if cfg.StartingHealth <= 0 {
		cfg.StartingHealth = def.StartingHealth
	}
	g := &Game{
		id:       uuid.NewString(),
		cfg:      cfg,
		logger:   zap.NewNop(),
		turns:    rules.NewTurnManager(),
		triggers: newTriggerTable(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.catalogue == nil {
		g.catalogue = catalogue.Default()
	}
	if g.registry == nil {
		g.registry = NewEffectRegistry(g.logger)
	}
	g.rngSrc = &rand.PCGSource{}
	g.rngSrc.Seed(g.cfg.Seed)
	g.rng = rand.New(g.rngSrc)
	g.logger = g.logger.With(zap.String("game_id", g.id))
	return g
}

func (g *Game) ID() string                      { return g.id }
func (g *Game) Config() Config                  { return g.cfg }
func (g *Game) Logger() *zap.Logger             { return g.logger }
func (g *Game) Catalogue() *catalogue.Catalogue { return g.catalogue }
func (g *Game) Registry() *EffectRegistry       { return g.registry }
func (g *Game) Turn() int                       { return g.turns.Turn() }
func (g *Game) Phase() rules.Phase              { return g.turns.Phase() }
func (g *Game) Faulted() bool                   { return g.faulted }

// ActionsThisTurn returns the number of actions taken in the current turn.
func (g *Game) ActionsThisTurn() int { return g.turns.ActionsThisTurn() }

// Ended reports whether the game is over.
func (g *Game) Ended() bool {
	return g.turns.Phase() == rules.PhaseGameOver
}

// Players returns both players in seat order. Entries are nil before Setup.
func (g *Game) Players() [2]*Player {
	return g.players
}

// CurrentPlayer returns the player whose turn it is, or nil before Setup.
func (g *Game) CurrentPlayer() *Player {
	return g.players[g.turns.Current()]
}

// Opponent returns the player whose turn it is not.
func (g *Game) Opponent() *Player {
	return g.players[1-g.turns.Current()]
}

// OpponentOf returns p's opponent.
func (g *Game) OpponentOf(p *Player) *Player {
	return p.Opponent()
}

// Winner returns the winning player, or nil for a tie or an unfinished game.
func (g *Game) Winner() *Player {
	for _, p := range g.players {
		if p != nil && p.PlayState == rules.PlayStateWon {
			return p
		}
	}
	return nil
}

func (g *Game) allocID() int {
	g.nextEntityID++
	return g.nextEntityID
}

func (g *Game) createEntity(def *catalogue.Card) (*Entity, error) {
	e := newEntity(g, def)
	h, err := g.registry.Lookup(def)
	if err != nil {
		g.logger.Warn("card handlers unavailable, treating card as vanilla",
			zap.String("card_id", def.ID),
			zap.Error(err),
		)
	}
	e.handlers = h
	if h != nil && h.Setup != nil {
		if err := h.Setup(g, e); err != nil {
			return nil, wrapHandler(e, "setup", err)
		}
	}
	return e, nil
}

// CreateCard creates an entity for cardID with no owner and no zone.
// Unknown ids produce a vanilla placeholder spell.
func (g *Game) CreateCard(cardID string) (*Entity, error) {
	def, ok := g.catalogue.Lookup(cardID)
	if !ok {
		g.logger.Warn("unknown card id", zap.String("card_id", cardID))
		def = g.catalogue.Get(cardID)
	}
	return g.createEntity(def)
}

func (g *Game) setHeroPower(hero *Entity, powerID string) error {
	if powerID == "" {
		hero.HeroPower = nil
		return nil
	}
	hp, err := g.CreateCard(powerID)
	if err != nil {
		return err
	}
	hp.Owner = hero.Owner
	hp.Zone = ZonePlay
	hero.HeroPower = hp
	return nil
}

// Setup seats two players created by NewPlayer. The first player goes
// first. Decks are shuffled and the second player receives The Coin.
func (g *Game) Setup(first, second *Player) error {
	if g.turns.Phase() != rules.PhaseDeckBuilding {
		return illegal("setup in phase %s", g.turns.Phase())
	}
	if first == nil || second == nil || first == second {
		return fmt.Errorf("setup needs two distinct players")
	}
	if first.game != g || second.game != g {
		return fmt.Errorf("players belong to another game")
	}
	for i, p := range []*Player{first, second} {
		p.Index = i
		g.players[i] = p
		if p.Hero == nil {
			if err := p.SetHero(DefaultHeroID); err != nil {
				return err
			}
		}
		g.Shuffle(p.Deck)
	}
	coin, err := g.CreateCard(CoinID)
	if err != nil {
		return err
	}
	coin.Tags.Set(tags.Generated, 1)
	second.AddToHand(coin)

	g.logger.Info("game set up",
		zap.String("first", first.Name),
		zap.String("second", second.Name),
		zap.Int("first_deck", len(first.Deck)),
		zap.Int("second_deck", len(second.Deck)),
	)
	return nil
}

// AddCardsToDeck creates cards by id and puts them into p's deck. It is
// meant for building decks before Setup.
func (g *Game) AddCardsToDeck(p *Player, cardIDs ...string) error {
	for _, id := range cardIDs {
		card, err := g.CreateCard(id)
		if err != nil {
			return err
		}
		card.Owner = p
		if !p.AddToDeck(card, -1) {
			return illegal("deck of %s is full", p.Name)
		}
	}
	return nil
}

// StartMulligan deals opening hands: three cards to the first player and
// four to the second.
func (g *Game) StartMulligan() error {
	if g.players[0] == nil {
		return fmt.Errorf("start mulligan before setup")
	}
	if err := g.turns.Transition(rules.PhaseMulligan); err != nil {
		return illegal("%v", err)
	}
	for i, p := range g.players {
		if _, err := p.Draw(StartingHand + i); err != nil {
			return g.finish(err)
		}
		p.MulliganState = rules.MulliganInput
	}
	return nil
}

// DoMulligan shuffles the listed hand cards back into p's deck and draws as
// many replacements, which it returns. The Coin cannot be replaced. The game
// starts once both players are done.
func (g *Game) DoMulligan(p *Player, replace []*Entity) ([]*Entity, error) {
	if g.faulted {
		return nil, ErrGameFaulted
	}
	if g.turns.Phase() != rules.PhaseMulligan {
		return nil, illegal("mulligan in phase %s", g.turns.Phase())
	}
	if p == nil || p.game != g || p.MulliganState != rules.MulliganInput {
		return nil, illegal("player is not choosing a mulligan")
	}
	replace = append([]*Entity(nil), replace...)
	seen := make(map[*Entity]bool, len(replace))
	for _, c := range replace {
		if c == nil || c.Owner != p || c.Zone != ZoneHand || c.CardID == CoinID || seen[c] {
			return nil, illegal("cannot mulligan %v", c)
		}
		seen[c] = true
	}
	for _, c := range replace {
		g.move(c, p, ZoneDeck, -1)
	}
	g.Shuffle(p.Deck)
	drawn, err := p.Draw(len(replace))
	if err != nil {
		return drawn, g.finish(err)
	}
	p.MulliganState = rules.MulliganDone
	g.record(HistoryEntry{Action: "mulligan", Player: p.Index, Amount: len(replace)})

	if g.players[0].MulliganState == rules.MulliganDone && g.players[1].MulliganState == rules.MulliganDone {
		return drawn, g.finish(g.startGame())
	}
	return drawn, nil
}

// SkipMulligan keeps both opening hands and starts the game, dealing the
// hands first if that has not happened yet.
func (g *Game) SkipMulligan() error {
	if g.faulted {
		return ErrGameFaulted
	}
	if g.turns.Phase() == rules.PhaseDeckBuilding {
		if err := g.StartMulligan(); err != nil {
			return err
		}
	}
	if g.turns.Phase() != rules.PhaseMulligan {
		return illegal("skip mulligan in phase %s", g.turns.Phase())
	}
	for _, p := range g.players {
		p.MulliganState = rules.MulliganDone
	}
	return g.finish(g.startGame())
}

func (g *Game) startGame() error {
	if err := g.turns.Begin(0); err != nil {
		return err
	}
	g.logger.Info("game started", zap.String("first", g.players[0].Name))
	if err := g.beginTurn(g.players[0]); err != nil {
		return err
	}
	return g.settle()
}

// Concede ends the game with p losing.
func (g *Game) Concede(p *Player) error {
	if g.Ended() {
		return ErrGameOver
	}
	if p == nil || p.game != g || p.Index < 0 {
		return illegal("unknown player")
	}
	p.PlayState = rules.PlayStateLost
	p.Opponent().PlayState = rules.PlayStateWon
	g.record(HistoryEntry{Action: "concede", Player: p.Index})
	g.endGame()
	return nil
}

func (g *Game) checkAction(endTurn bool) error {
	if g.faulted {
		return ErrGameFaulted
	}
	if g.Ended() {
		return ErrGameOver
	}
	if g.pending != nil {
		return ErrPendingChoice
	}
	if !g.turns.Phase().InMain() {
		return illegal("no actions in phase %s", g.turns.Phase())
	}
	if !endTurn && g.turns.ActionsThisTurn() >= g.cfg.MaxActionsPerTurn {
		return illegal("action limit of %d reached", g.cfg.MaxActionsPerTurn)
	}
	return nil
}

// finish marks the game faulted when an error escapes resolution.
func (g *Game) finish(err error) error {
	if err == nil || errors.Is(err, ErrIllegalAction) {
		return err
	}
	g.faulted = true
	g.logger.Error("action failed during resolution", zap.Error(err))
	return err
}

// settle runs the death pipeline and checks for a finished game.
func (g *Game) settle() error {
	if err := g.processDeaths(); err != nil {
		return err
	}
	return g.checkGameOver()
}

func (g *Game) checkGameOver() error {
	if g.Ended() {
		return nil
	}
	if !g.players[0].Dead() && !g.players[1].Dead() {
		return nil
	}
	for _, p := range g.players {
		if p.Dead() {
			if err := g.FireEvent(Event{Type: rules.EventHeroDeath, Player: p, Entity: p.Hero}); err != nil {
				return err
			}
		}
	}
	dead0, dead1 := g.players[0].Dead(), g.players[1].Dead()
	switch {
	case dead0 && dead1:
		g.players[0].PlayState = rules.PlayStateTied
		g.players[1].PlayState = rules.PlayStateTied
	case dead0:
		g.players[0].PlayState = rules.PlayStateLost
		g.players[1].PlayState = rules.PlayStateWon
	case dead1:
		g.players[0].PlayState = rules.PlayStateWon
		g.players[1].PlayState = rules.PlayStateLost
	default:
		return nil
	}
	g.endGame()
	return nil
}

func (g *Game) endGame() {
	_ = g.turns.Transition(rules.PhaseGameOver)
	g.pending = nil
	fields := []zap.Field{zap.Int("turn", g.turns.Turn())}
	if w := g.Winner(); w != nil {
		fields = append(fields, zap.String("winner", w.Name))
	} else {
		fields = append(fields, zap.String("winner", "none"))
	}
	g.logger.Info("game over", fields...)
}

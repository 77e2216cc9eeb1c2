package catalogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool used for reading cards.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// TxBeginner is the subset of *pgxpool.Pool used for importing cards.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Schema creates the cards table read by LoadPostgres.
const Schema = `
CREATE TABLE IF NOT EXISTS hs_cards (
	card_id     TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	card_type   TEXT NOT NULL,
	card_class  TEXT NOT NULL DEFAULT 'NEUTRAL',
	card_set    TEXT NOT NULL DEFAULT '',
	rarity      TEXT NOT NULL DEFAULT '',
	cost        INTEGER NOT NULL DEFAULT 0,
	attack      INTEGER NOT NULL DEFAULT 0,
	health      INTEGER NOT NULL DEFAULT 0,
	durability  INTEGER NOT NULL DEFAULT 0,
	armor       INTEGER NOT NULL DEFAULT 0,
	overload    INTEGER NOT NULL DEFAULT 0,
	rules_text  TEXT NOT NULL DEFAULT '',
	collectible BOOLEAN NOT NULL DEFAULT FALSE,
	keywords    TEXT NOT NULL DEFAULT '',
	hero_power  TEXT NOT NULL DEFAULT ''
)`

const selectCards = `
SELECT card_id, name, card_type, card_class, card_set, rarity,
       cost, attack, health, durability, armor, overload,
       rules_text, collectible, keywords, hero_power
FROM hs_cards
ORDER BY card_id`

const upsertCard = `
INSERT INTO hs_cards (
	card_id, name, card_type, card_class, card_set, rarity,
	cost, attack, health, durability, armor, overload,
	rules_text, collectible, keywords, hero_power
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
ON CONFLICT (card_id) DO UPDATE SET
	name = EXCLUDED.name, card_type = EXCLUDED.card_type, card_class = EXCLUDED.card_class,
	card_set = EXCLUDED.card_set, rarity = EXCLUDED.rarity, cost = EXCLUDED.cost,
	attack = EXCLUDED.attack, health = EXCLUDED.health, durability = EXCLUDED.durability,
	armor = EXCLUDED.armor, overload = EXCLUDED.overload, rules_text = EXCLUDED.rules_text,
	collectible = EXCLUDED.collectible, keywords = EXCLUDED.keywords, hero_power = EXCLUDED.hero_power`

// LoadPostgres reads every row of hs_cards into a catalogue.
func LoadPostgres(ctx context.Context, db Querier) (*Catalogue, error) {
	rows, err := db.Query(ctx, selectCards)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []*Card
	for rows.Next() {
		var (
			c        Card
			cardType string
			keywords string
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &cardType, &c.Class, &c.Set, &c.Rarity,
			&c.Cost, &c.Attack, &c.Health, &c.Durability, &c.Armor, &c.Overload,
			&c.Text, &c.Collectible, &keywords, &c.HeroPower,
		); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		c.Type = CardType(cardType)
		c.Keywords = splitKeywords(keywords)
		cards = append(cards, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return New(cards)
}

// ImportPostgres upserts every card of c in transactions of batchSize rows.
// It returns the number of rows written.
func ImportPostgres(ctx context.Context, db TxBeginner, c *Catalogue, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	all := c.All()
	imported := 0
	for i := 0; i < len(all); i += batchSize {
		end := i + batchSize
		if end > len(all) {
			end = len(all)
		}
		tx, err := db.Begin(ctx)
		if err != nil {
			return imported, fmt.Errorf("begin transaction: %w", err)
		}
		for _, card := range all[i:end] {
			if _, err := tx.Exec(ctx, upsertCard,
				card.ID, card.Name, string(card.Type), card.Class, card.Set, card.Rarity,
				card.Cost, card.Attack, card.Health, card.Durability, card.Armor, card.Overload,
				card.Text, card.Collectible, strings.Join(card.Keywords, ","), card.HeroPower,
			); err != nil {
				_ = tx.Rollback(ctx)
				return imported, fmt.Errorf("insert card %s: %w", card.ID, err)
			}
		}
		if err := tx.Commit(ctx); err != nil {
			return imported, fmt.Errorf("commit batch: %w", err)
		}
		imported += end - i
	}
	return imported, nil
}

func splitKeywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

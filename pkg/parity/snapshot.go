// Package parity implements the C-reference convergence-trace harness:
// snapshot diffing with per-field severity classification, an RNG trace
// comparator, and a ratcheting convergence gate over fixed scenarios.
package parity

import "github.com/ninehex/nhsim/pkg/model"

// InventoryItem is the subset of an Object's fields a GameSnapshot
// captures: object type, quantity, enchantment, and BUC.
type InventoryItem struct {
	ObjectType  int16     `json:"object_type"`
	Quantity    int32     `json:"quantity"`
	Enchantment int8      `json:"enchantment"`
	BUC         model.BUC `json:"buc"`
}

// MonsterSnapshot is the subset of a Monster's fields a GameSnapshot
// captures: monster type, position, and HP.
type MonsterSnapshot struct {
	MonsterType int16 `json:"monster_type"`
	X           int8  `json:"x"`
	Y           int8  `json:"y"`
	HP          int32 `json:"hp"`
}

// GameSnapshot captures every field observable from the C reference.
type GameSnapshot struct {
	Turn       uint64            `json:"turn"`
	X          int8              `json:"x"`
	Y          int8              `json:"y"`
	HP         int32             `json:"hp"`
	HPMax      int32             `json:"hp_max"`
	Energy     int32             `json:"energy"`
	AC         int32             `json:"ac"`
	Gold       int64             `json:"gold"`
	Attributes [6]int8           `json:"attributes"`
	Nutrition  int32             `json:"nutrition"`
	Alive      bool              `json:"alive"`
	Inventory  []InventoryItem   `json:"inventory"`
	Monsters   []MonsterSnapshot `json:"monsters"`
}

// Snapshot extracts a GameSnapshot from gs's current state.
func Snapshot(gs *model.GameState) GameSnapshot {
	you := &gs.Player
	s := GameSnapshot{
		Turn:      gs.Turns,
		X:         you.Pos.X,
		Y:         you.Pos.Y,
		HP:        you.HP,
		HPMax:     you.HPMax,
		Energy:    you.Energy,
		AC:        10 - you.ArmorClassPenalty,
		Gold:      you.Gold,
		Nutrition: you.Nutrition,
		Alive:     you.HP > 0,
	}
	for i := 0; i < 6; i++ {
		s.Attributes[i] = you.Attributes[i].Current
	}
	for _, o := range gs.Inventory {
		s.Inventory = append(s.Inventory, InventoryItem{
			ObjectType: o.ObjectType, Quantity: o.Quantity, Enchantment: o.Enchantment, BUC: o.BUC,
		})
	}
	for _, m := range gs.Current().Monsters {
		s.Monsters = append(s.Monsters, MonsterSnapshot{
			MonsterType: m.MonsterType, X: m.Pos.X, Y: m.Pos.Y, HP: m.HP,
		})
	}
	return s
}

package repository

import "github.com/eslsoft/flashdeck/pkg/filterexpr"

var listCardsSchema = filterexpr.Schema{
	Filter: map[string]filterexpr.FilterField{
		"front": {
			Column: "front",
			Kind:   filterexpr.KindString,
			Ops:    []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpSW},
		},
		"state": {
			Column: "forward_state",
			Kind:   filterexpr.KindString,
			Ops:    []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpIN},
		},
		"reverse_state": {
			Column: "reverse_state",
			Kind:   filterexpr.KindString,
			Ops:    []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpIN},
		},
		"reps": {
			Column: "forward_reps",
			Kind:   filterexpr.KindNumber,
			Ops:    []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpGTE, filterexpr.OpLTE},
		},
		"lapses": {
			Column: "forward_lapses",
			Kind:   filterexpr.KindNumber,
			Ops:    []filterexpr.Op{filterexpr.OpGTE, filterexpr.OpLTE},
		},
		"due": {
			Column: "forward_due",
			Kind:   filterexpr.KindTimestamp,
			Ops:    []filterexpr.Op{filterexpr.OpGTE, filterexpr.OpLTE},
		},
		"created_at": {
			Column: "created_at",
			Kind:   filterexpr.KindTimestamp,
			Ops:    []filterexpr.Op{filterexpr.OpGTE, filterexpr.OpLTE},
		},
	},
	Order: filterexpr.OrderSchema{
		Default:  "created_at",
		Tiebreak: "id",
		Fields: map[string]filterexpr.OrderField{
			"created_at": {Column: "created_at"},
			"updated_at": {Column: "updated_at"},
			"front":      {Column: "front"},
			"due":        {Column: "forward_due"},
			"id":         {Column: "id"},
		},
	},
}

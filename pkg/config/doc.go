// Package config loads kitchen definitions and application settings.
//
// # Kitchen definitions
//
// A definition names the menu, the stations with their assigned dishes and
// opening stock, the backup pool, and the orders to fulfill. It may be
// written as YAML, JSON or CUE; the format is chosen by file extension.
//
//	name: Corner Bistro
//	menu:
//	  - name: Burger
//	    course: main_course
//	    requirements:
//	      - {name: Bun, quantity: 1}
//	      - {name: Patty, quantity: 1}
//	stations:
//	  - name: Grill
//	    items: [Burger]
//	    stock:
//	      - {name: Bun, quantity: 4}
//	backup:
//	  - {name: Patty, quantity: 10}
//	orders:
//	  - item: Burger
//	    count: 2
//	  - item: Burger
//	    dietary: {vegetarian: true}
//
// Every format is checked against the same closed CUE schema, so unknown
// fields are rejected. Decoded definitions are then checked with struct
// tags and for references between menu, stations and orders. Problems carry
// a severity: errors make a definition unusable, warnings (such as an order
// no station can prepare) do not.
//
//	loader := config.NewLoader()
//	loaded, err := loader.LoadFile("kitchen.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := loaded.Err(); err != nil {
//	    return err
//	}
//	k, err := config.Build(loaded.Definition, kitchen.WithNarrator(narrator))
//
// Build creates each dish once, so a dietary request on one order changes
// the dish for every station and order that references it.
//
// # Settings
//
// LoadSettings reads bistro.yaml (or an explicit file) and BISTRO_*
// environment variables through viper. Settings.Telemetry derives the
// telemetry configuration.
package config

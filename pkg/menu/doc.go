// Package menu provides the dishes served by the bistro.
//
// A Dish implements kitchen.MenuItem. Course-specific attributes live in one
// of three payloads (Appetizer, Main, Dessert) selected by the dish's Course,
// and ApplyDietary rewrites both the ingredient requirements and those
// attributes in place.
package menu

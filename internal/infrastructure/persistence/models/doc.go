// Package models contains the GORM persistence models and their mappings
// to and from the domain aggregates. Models never leak outside the
// persistence layer.
package models

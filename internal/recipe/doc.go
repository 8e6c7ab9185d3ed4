// Package recipe owns the recipe tree: recipes, their components, and each
// component's ingredients and steps.
//
// Every recipe is created by exactly one user. Components, steps and
// ingredients belong to that user through their parent chain, and every
// mutation is checked against the owner-or-admin policy before it runs.
// A mutation anywhere in the tree refreshes the recipe's UpdatedAt inside
// the same transaction.
//
// # Thread Safety
//
// SQLRepository and Service are safe for concurrent use. Multi-row writes run
// in one transaction; concurrent edits of the same recipe are last-writer-wins.
package recipe

// Package oracle implements the reading rule engine: it classifies a
// question into a topic, draws a card from the 22-card major arcana,
// resolves a sun sign from a birth date, composes the reading text and
// decides whether a member's plan still allows a draw this week.
//
// Everything here is free of I/O. Randomness enters only through the RNG
// interface and time only through explicit arguments, so every function
// is deterministic under test.
package oracle

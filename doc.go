// Package aggregate batches n independently-verifying Groth16 proofs into a
// single O(log n)-size proof using a SnarkPack-style TIPP/MIPP argument: a
// generalized inner pairing argument (GIPA, package internal/ipa) carries
// both the TIPP check (A, B paired against a structured V-key/W-key) and the
// MIPP check (C against the same V-key) through a shared sequence of
// recursive-halving challenges, with the final single-element residuals tied
// back to the setup's secrets via two KZG openings.
//
// AggregateProofs produces an AggregateProof from a batch of proofs and a
// ProverSRS specialized to that batch size (see package srs).
// VerifyAggregateProof checks one against a prepared Groth16 verifying key
// and the corresponding VerifierSRS. Proofs and verifying keys are supplied
// by the caller's own Groth16 backend through the minimal contract in
// package groth16; this module never produces a Groth16 proof itself.
package aggregate

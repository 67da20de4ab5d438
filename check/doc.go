// Package check contains the verification stages: the structural format
// gate, the mail-exchanger resolution gate and the SMTP recipient probe.
// These types can be used directly, but the usual entry point is the
// Verifier in the github.com/devsahil2063/Email-Verifier root package.
package check

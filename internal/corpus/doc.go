// Package corpus holds the fixed test pairs used to exercise the anagram
// algorithms.
//
// Pairs are addressed by a model letter and a variant sign:
//
//	W+  carbon / corban                  (congruent)
//	W-  carbo / corban                   (incongruent)
//	E+  NoSignature / NoSignature        (congruent, embedded spaces)
//	E-  NoSignature / Signature          (incongruent, embedded spaces)
//	M+  NoSignatureMinified twice        (congruent, spaces removed)
//	M-  NoSignatureMinified / SignatureMinified
//
// Pairs loaded from a configuration file use the Custom model.
package corpus

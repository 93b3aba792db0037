// Package sentiment implements the multi-model sentiment ensemble: text
// normalization, classifier adapters that map heterogeneous native outputs
// into a common three-class schema, and the weighted combiner that produces
// one verdict per document with a calibrated confidence.
package sentiment

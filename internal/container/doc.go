// Package container reads and writes the ORSO multi-dataset text format.
//
// A file starts with a fixed magic line, followed by one block per dataset:
//
//	# ORSO reflectivity data file | 1.0 standard | YAML encoding | https://www.reflectometry.org/
//	# data_set: 0
//	# ...                      full YAML header of dataset 1
//	# # Qz (1/angstrom)      R
//	1.0000000000000000e-02 9.9000000000000000e-01
//	# ---
//	# data_set: 1
//	# ...                      only the keys that differ from dataset 1
//	# # Qz (1/angstrom)      R
//	...
//
// Header lines carry a "# " marker; numeric rows carry none. The column
// header line is itself a YAML comment, so header blocks decode without it.
//
// Reading folds every later header onto the first with diff.Apply before the
// type resolver reifies it; writing emits diff.Diff against the first header
// plus the dataset key, which is never elided.
package container

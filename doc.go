//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package modelfetch downloads a list of pretrained model weight files
// into local directories, skipping the ones already present, and reports
// which critical files are still missing at the end of the run.
package modelfetch

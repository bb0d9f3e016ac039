//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package modelfetch

const (
	sadTalkerV002   = "https://github.com/Winfredy/SadTalker/releases/download/v0.0.2/"
	sadTalkerV002RC = "https://github.com/OpenTalker/SadTalker/releases/download/v0.0.2-rc/"
	facexlib        = "https://github.com/xinntao/facexlib/releases/download/"
	gfpgan          = "https://github.com/TencentARC/GFPGAN/releases/download/"
)

// DefaultGroups returns the built-in list of SadTalker checkpoints and GFPGAN
// enhancer weights, relative to the working directory.
func DefaultGroups() []Group {
	return []Group{
		{
			Title: "Essential Models",
			Tasks: []Task{
				{URL: sadTalkerV002 + "auido2exp_00300-model.pth", Path: "checkpoints/auido2exp_00300-model.pth"},
				{URL: sadTalkerV002 + "auido2pose_00140-model.pth", Path: "checkpoints/auido2pose_00140-model.pth"},
				{URL: sadTalkerV002 + "epoch_20.pth", Path: "checkpoints/epoch_20.pth"},
				{URL: sadTalkerV002 + "facevid2vid_00189-model.pth.tar", Path: "checkpoints/facevid2vid_00189-model.pth.tar"},
				{URL: sadTalkerV002 + "wav2lip.pth", Path: "checkpoints/wav2lip.pth"},
				{URL: sadTalkerV002 + "mapping_00229-model.pth.tar", Path: "checkpoints/mapping_00229-model.pth.tar"},
				{URL: sadTalkerV002RC + "mapping_00109-model.pth.tar", Path: "checkpoints/mapping_00109-model.pth.tar"},
				{URL: sadTalkerV002RC + "SadTalker_V0.0.2_256.safetensors", Path: "checkpoints/SadTalker_V0.0.2_256.safetensors"},
				{URL: sadTalkerV002RC + "SadTalker_V0.0.2_512.safetensors", Path: "checkpoints/SadTalker_V0.0.2_512.safetensors"},
			},
		},
		{
			Title: "GFPGAN Enhancer Weights",
			Tasks: []Task{
				{URL: facexlib + "v0.1.0/alignment_WFLW_4HG.pth", Path: "gfpgan/weights/alignment_WFLW_4HG.pth"},
				{URL: facexlib + "v0.1.0/detection_Resnet50_Final.pth", Path: "gfpgan/weights/detection_Resnet50_Final.pth"},
				{URL: gfpgan + "v1.3.0/GFPGANv1.4.pth", Path: "gfpgan/weights/GFPGANv1.4.pth"},
				{URL: facexlib + "v0.2.2/parsing_parsenet.pth", Path: "gfpgan/weights/parsing_parsenet.pth"},
			},
		},
	}
}

// DefaultCriticalFiles returns the destinations whose absence is likely to
// break inference.
func DefaultCriticalFiles() []string {
	return []string{
		"checkpoints/auido2pose_00140-model.pth",
		"checkpoints/auido2exp_00300-model.pth",
		"checkpoints/epoch_20.pth",
	}
}

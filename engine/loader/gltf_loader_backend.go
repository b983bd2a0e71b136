package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-actor/common"
	"github.com/Carmen-Shannon/oxy-actor/engine/model"
)

// gltfClipGap is the idle time inserted between consecutive clips on the model's timeline.
const gltfClipGap = 1.0

// gltfLoaderBackend reads skeletons and animation clips from glTF 2.0 (.gltf or .glb) files.
// Every animation becomes a group named after the clip, with "start", "loop start",
// "loop stop" and "stop" text keys on the first root joint.
type gltfLoaderBackend struct{}

var _ loaderBackend = &gltfLoaderBackend{}

// newGLTFLoaderBackend creates the glTF backend.
//
// Returns:
//   - loaderBackend: the backend
func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackend{}
}

func (b *gltfLoaderBackend) Extensions() []string {
	return []string{".glb", ".gltf"}
}

func (b *gltfLoaderBackend) Load(path string) (model.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := &gltfParser{baseDir: filepath.Dir(path)}
	if err := p.parse(data); err != nil {
		return nil, err
	}
	return gltfToModel(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), p)
}

func (b *gltfLoaderBackend) LoadReader(name string, r io.Reader) (model.Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := &gltfParser{}
	if err := p.parse(data); err != nil {
		return nil, err
	}
	return gltfToModel(name, p)
}

// gltfTrack accumulates the keys of one node across every clip.
type gltfTrack struct {
	node        int
	translation []model.VectorKeyframe
	rotation    []model.QuaternionKeyframe
	scale       []model.VectorKeyframe
}

// gltfClipSpan is a clip's window on the merged timeline.
type gltfClipSpan struct {
	start, stop float32
	paths       map[int]map[string]bool
}

func gltfToModel(name string, p *gltfParser) (model.Model, error) {
	doc := p.document
	joints, err := gltfJoints(doc)
	if err != nil {
		return nil, err
	}
	parents := gltfParents(doc)

	skel, err := gltfSkeleton(p, joints, parents)
	if err != nil {
		return nil, fmt.Errorf("skeleton: %w", err)
	}
	options := []model.ModelBuilderOption{model.WithName(name)}
	if skel != nil {
		options = append(options, model.WithSkeleton(skel))
	}

	tracks := make(map[int]*gltfTrack)
	spans := make([]gltfClipSpan, 0, len(doc.Animations))
	keys := make([]model.TextKey, 0, 4*len(doc.Animations))
	var offset float32

	for ai := range doc.Animations {
		anim := &doc.Animations[ai]
		clip := anim.Name
		if clip == "" {
			clip = fmt.Sprintf("animation_%d", ai)
		}

		span := gltfClipSpan{start: offset, stop: offset, paths: make(map[int]map[string]bool)}
		for ci := range anim.Channels {
			ch := &anim.Channels[ci]
			if ch.Target.Node == nil {
				continue
			}
			node := *ch.Target.Node
			if node < 0 || node >= len(doc.Nodes) {
				return nil, fmt.Errorf("animation %q channel %d: invalid node %d", clip, ci, node)
			}
			if ch.Sampler < 0 || ch.Sampler >= len(anim.Samplers) {
				return nil, fmt.Errorf("animation %q channel %d: invalid sampler index %d", clip, ci, ch.Sampler)
			}
			sampler := &anim.Samplers[ch.Sampler]
			if sampler.Interpolation == "CUBICSPLINE" {
				return nil, fmt.Errorf("animation %q channel %d: cubic spline sampling is not supported", clip, ci)
			}

			times, err := readAccessor[float32](p, sampler.Input, gltfAccessorTypeScalar, 1)
			if err != nil {
				return nil, fmt.Errorf("animation %q channel %d: timestamps: %w", clip, ci, err)
			}
			if len(times) > 0 {
				span.stop = max(span.stop, offset+times[len(times)-1])
			}

			track := tracks[node]
			if track == nil {
				track = &gltfTrack{node: node}
				tracks[node] = track
			}
			if err := track.add(p, ch.Target.Path, sampler.Output, times, offset); err != nil {
				return nil, fmt.Errorf("animation %q channel %d: %w", clip, ci, err)
			}
			if span.paths[node] == nil {
				span.paths[node] = make(map[string]bool)
			}
			span.paths[node][ch.Target.Path] = true
		}

		keys = append(keys,
			model.TextKey{Time: span.start, Label: clip + ": start"},
			model.TextKey{Time: span.start, Label: clip + ": loop start"},
			model.TextKey{Time: span.stop, Label: clip + ": loop stop"},
			model.TextKey{Time: span.stop, Label: clip + ": stop"},
		)
		spans = append(spans, span)
		offset = span.stop + gltfClipGap
	}

	if len(tracks) > 0 {
		options = append(options, model.WithChannels(gltfChannels(doc, skel, joints, tracks, spans)...))
	}
	if len(keys) > 0 {
		options = append(options, model.WithTextKeys(gltfTextKeyBone(skel), keys...))
	}
	if rs := gltfRenderables(doc, joints, parents); len(rs) > 0 {
		options = append(options, model.WithRenderables(rs...))
	}
	return model.NewModel(options...), nil
}

func (t *gltfTrack) add(p *gltfParser, path string, output int, times []float32, offset float32) error {
	switch path {
	case gltfAnimPathTranslation, gltfAnimPathScale:
		values, err := readAccessor[[3]float32](p, output, gltfAccessorTypeVec3, 3)
		if err != nil {
			return fmt.Errorf("%s values: %w", path, err)
		}
		keys := make([]model.VectorKeyframe, min(len(times), len(values)))
		for i := range keys {
			keys[i] = model.VectorKeyframe{Time: offset + times[i], Value: values[i]}
		}
		if path == gltfAnimPathTranslation {
			t.translation = append(t.translation, keys...)
		} else {
			t.scale = append(t.scale, keys...)
		}
	case gltfAnimPathRotation:
		values, err := readAccessor[[4]float32](p, output, gltfAccessorTypeVec4, 4)
		if err != nil {
			return fmt.Errorf("rotation values: %w", err)
		}
		for i := range min(len(times), len(values)) {
			t.rotation = append(t.rotation, model.QuaternionKeyframe{Time: offset + times[i], Value: common.QuatNormalize(values[i])})
		}
	}
	// morph target weights have no bone to drive
	return nil
}

// gltfChannels converts the merged tracks into bone channels. A clip that leaves an
// otherwise animated property alone holds the bind pose for its whole window, so sampling
// inside it never blends toward a neighbouring clip.
func gltfChannels(doc *gltfDocument, skel *model.Skeleton, joints map[int]string, tracks map[int]*gltfTrack, spans []gltfClipSpan) []model.AnimationChannel {
	nodes := make([]int, 0, len(tracks))
	for node := range tracks {
		nodes = append(nodes, node)
	}
	slices.Sort(nodes)

	channels := make([]model.AnimationChannel, 0, len(nodes))
	for _, node := range nodes {
		t := tracks[node]
		bind := gltfNodeTransform(&doc.Nodes[node])
		for _, span := range spans {
			paths := span.paths[node]
			if len(t.translation) > 0 && !paths[gltfAnimPathTranslation] {
				t.translation = append(t.translation,
					model.VectorKeyframe{Time: span.start, Value: bind.Translation},
					model.VectorKeyframe{Time: span.stop, Value: bind.Translation})
			}
			if len(t.rotation) > 0 && !paths[gltfAnimPathRotation] {
				t.rotation = append(t.rotation,
					model.QuaternionKeyframe{Time: span.start, Value: bind.Rotation},
					model.QuaternionKeyframe{Time: span.stop, Value: bind.Rotation})
			}
			if len(t.scale) > 0 && !paths[gltfAnimPathScale] {
				t.scale = append(t.scale,
					model.VectorKeyframe{Time: span.start, Value: bind.Scale},
					model.VectorKeyframe{Time: span.stop, Value: bind.Scale})
			}
		}
		sort.SliceStable(t.translation, func(a, b int) bool { return t.translation[a].Time < t.translation[b].Time })
		sort.SliceStable(t.rotation, func(a, b int) bool { return t.rotation[a].Time < t.rotation[b].Time })
		sort.SliceStable(t.scale, func(a, b int) bool { return t.scale[a].Time < t.scale[b].Time })

		name, ok := joints[node]
		if !ok {
			name = gltfNodeName(doc, node)
		}
		idx, _ := skel.BoneIndex(name)
		channels = append(channels, model.AnimationChannel{
			BoneName:     name,
			BoneIndex:    idx,
			PositionKeys: t.translation,
			RotationKeys: t.rotation,
			ScaleKeys:    t.scale,
		})
	}
	return channels
}

// gltfTextKeyBone picks the first root joint to carry the text keys and root motion.
func gltfTextKeyBone(skel *model.Skeleton) string {
	if skel == nil || len(skel.RootBoneIndices) == 0 {
		return ""
	}
	return skel.Bones[skel.RootBoneIndices[0]].Name
}

// gltfRenderables lists the mesh nodes, attached to their parent joint when they have one.
func gltfRenderables(doc *gltfDocument, joints map[int]string, parents map[int]int) []model.Renderable {
	var rs []model.Renderable
	for i, node := range doc.Nodes {
		if node.Mesh == nil {
			continue
		}
		var meshName string
		if *node.Mesh >= 0 && *node.Mesh < len(doc.Meshes) {
			meshName = doc.Meshes[*node.Mesh].Name
		}
		r := model.Renderable{Name: common.Coalesce(node.Name, meshName, gltfNodeName(doc, i))}
		if parent, ok := parents[i]; ok {
			r.Bone = joints[parent]
		}
		rs = append(rs, r)
	}
	return rs
}

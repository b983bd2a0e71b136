package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-actor/common"
	"github.com/Carmen-Shannon/oxy-actor/engine/model"
	"gopkg.in/yaml.v3"
)

// yamlLoaderBackend reads object-set descriptions written in YAML.
type yamlLoaderBackend struct{}

var _ loaderBackend = &yamlLoaderBackend{}

// newYAMLLoaderBackend creates the YAML backend.
//
// Returns:
//   - loaderBackend: the backend
func newYAMLLoaderBackend() loaderBackend {
	return &yamlLoaderBackend{}
}

func (b *yamlLoaderBackend) Extensions() []string {
	return []string{".yaml", ".yml"}
}

func (b *yamlLoaderBackend) Load(path string) (model.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return b.decode(name, data)
}

func (b *yamlLoaderBackend) LoadReader(name string, r io.Reader) (model.Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return b.decode(name, data)
}

func (b *yamlLoaderBackend) decode(name string, data []byte) (model.Model, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return documentToModel(name, &doc)
}

// documentToModel converts a decoded description into a Model.
func documentToModel(name string, doc *yamlDocument) (model.Model, error) {
	if doc.Name != "" {
		name = doc.Name
	}
	options := []model.ModelBuilderOption{model.WithName(name)}

	var skel *model.Skeleton
	if doc.Skeleton != nil && len(doc.Skeleton.Bones) > 0 {
		var err error
		skel, err = buildSkeleton(doc.Skeleton.Bones)
		if err != nil {
			return nil, fmt.Errorf("skeleton: %w", err)
		}
		options = append(options, model.WithSkeleton(skel))
	}

	if doc.TextKeys != nil && len(doc.TextKeys.Keys) > 0 {
		keys := make([]model.TextKey, len(doc.TextKeys.Keys))
		for i, k := range doc.TextKeys.Keys {
			keys[i] = model.TextKey{Time: k.Time, Label: k.Label}
		}
		options = append(options, model.WithTextKeys(doc.TextKeys.Bone, keys...))
	}

	if len(doc.Channels) > 0 {
		channels := make([]model.AnimationChannel, len(doc.Channels))
		for i, c := range doc.Channels {
			if c.Bone == "" {
				return nil, fmt.Errorf("channel %d: missing bone", i)
			}
			idx, _ := skel.BoneIndex(c.Bone)
			channels[i] = model.AnimationChannel{
				BoneName:     c.Bone,
				BoneIndex:    idx,
				PositionKeys: vectorKeys(c.Translation),
				RotationKeys: quatKeys(c.Rotation),
				ScaleKeys:    vectorKeys(c.Scale),
			}
		}
		options = append(options, model.WithChannels(channels...))
	}

	if len(doc.Curves) > 0 {
		curves := make([]model.GenericCurve, len(doc.Curves))
		for i, c := range doc.Curves {
			if c.Clock != "" && c.Clock != model.ClockRealtime {
				return nil, fmt.Errorf("curve %q: unknown clock %q", c.Name, c.Clock)
			}
			keys := make([]model.ScalarKeyframe, len(c.Keys))
			for j, k := range c.Keys {
				keys[j] = model.ScalarKeyframe{Time: k.Time, Value: k.Value}
			}
			sort.SliceStable(keys, func(a, b int) bool { return keys[a].Time < keys[b].Time })
			curves[i] = model.GenericCurve{Name: c.Name, Clock: c.Clock, Keys: keys}
		}
		options = append(options, model.WithCurves(curves...))
	}

	if len(doc.Renderables) > 0 {
		rs := make([]model.Renderable, len(doc.Renderables))
		for i, r := range doc.Renderables {
			rs[i] = model.Renderable{Name: r.Name, Bone: r.Bone}
		}
		options = append(options, model.WithRenderables(rs...))
	}
	if len(doc.Particles) > 0 {
		ps := make([]model.ParticleSystem, len(doc.Particles))
		for i, p := range doc.Particles {
			ps[i] = model.ParticleSystem{Name: p.Name, Bone: p.Bone}
		}
		options = append(options, model.WithParticles(ps...))
	}

	return model.NewModel(options...), nil
}

func vectorKeys(in []yamlVectorKey) []model.VectorKeyframe {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.VectorKeyframe, len(in))
	for i, k := range in {
		out[i] = model.VectorKeyframe{Time: k.Time, Value: k.Value}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Time < out[b].Time })
	return out
}

func quatKeys(in []yamlQuatKey) []model.QuaternionKeyframe {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.QuaternionKeyframe, len(in))
	for i, k := range in {
		out[i] = model.QuaternionKeyframe{Time: k.Time, Value: common.QuatNormalize(k.Value)}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Time < out[b].Time })
	return out
}

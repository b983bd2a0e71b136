package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-actor/engine/model"
)

func intp(i int) *int { return &i }

// testGLTF builds a two-joint document with a "Walk" clip moving Hips and an "Idle" clip
// rotating Spine. The returned bytes are the float payload of buffer 0.
func testGLTF(t *testing.T) (*gltfDocument, []byte) {
	t.Helper()
	ibm := [2][16]float32{}
	for i := range ibm {
		ibm[i] = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	}
	ibm[1][13] = -7

	var payload bytes.Buffer
	for _, v := range []any{
		[2]float32{0, 1},
		[2][3]float32{{0, 1, 0}, {0, 1, 2}},
		[2]float32{0, 0.5},
		[2][4]float32{{0, 0, 0, 1}, {0, 0, 0.7071068, 0.7071068}},
		ibm,
	} {
		if err := binary.Write(&payload, binary.LittleEndian, v); err != nil {
			t.Fatalf("write payload: %v", err)
		}
	}

	doc := &gltfDocument{
		Asset: gltfAsset{Version: "2.0"},
		Nodes: []gltfNode{
			{Name: "Hips", Children: []int{1}, Translation: &[3]float32{0, 1, 0}},
			{Name: "Spine", Children: []int{2}, Translation: &[3]float32{0, 0.5, 0}},
			{Mesh: intp(0)},
		},
		Meshes: []gltfMesh{{Name: "Body"}},
		Accessors: []gltfAccessor{
			{BufferView: intp(0), ByteOffset: 0, ComponentType: gltfComponentTypeFloat, Count: 2, Type: gltfAccessorTypeScalar},
			{BufferView: intp(0), ByteOffset: 8, ComponentType: gltfComponentTypeFloat, Count: 2, Type: gltfAccessorTypeVec3},
			{BufferView: intp(0), ByteOffset: 32, ComponentType: gltfComponentTypeFloat, Count: 2, Type: gltfAccessorTypeScalar},
			{BufferView: intp(0), ByteOffset: 40, ComponentType: gltfComponentTypeFloat, Count: 2, Type: gltfAccessorTypeVec4},
			{BufferView: intp(0), ByteOffset: 72, ComponentType: gltfComponentTypeFloat, Count: 2, Type: gltfAccessorTypeMat4},
		},
		BufferViews: []gltfBufferView{{Buffer: 0, ByteLength: payload.Len()}},
		Buffers:     []gltfBuffer{{ByteLength: payload.Len()}},
		Skins:       []gltfSkin{{InverseBindMatrices: intp(4), Joints: []int{0, 1}}},
		Animations: []gltfAnimation{
			{
				Name:     "Walk",
				Channels: []gltfAnimChannel{{Sampler: 0, Target: gltfAnimTarget{Node: intp(0), Path: gltfAnimPathTranslation}}},
				Samplers: []gltfAnimSampler{{Input: 0, Output: 1}},
			},
			{
				Name:     "Idle",
				Channels: []gltfAnimChannel{{Sampler: 0, Target: gltfAnimTarget{Node: intp(1), Path: gltfAnimPathRotation}}},
				Samplers: []gltfAnimSampler{{Input: 2, Output: 3}},
			},
		},
	}
	return doc, payload.Bytes()
}

func embedded(t *testing.T, doc *gltfDocument, payload []byte) []byte {
	t.Helper()
	doc.Buffers[0].URI = "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(payload)
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func glb(t *testing.T, doc *gltfDocument, payload []byte) []byte {
	t.Helper()
	doc.Buffers[0].URI = ""
	jsonData, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out bytes.Buffer
	total := uint32(12 + 8 + len(jsonData) + 8 + len(payload))
	for _, v := range []any{
		gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: total},
		gltfGLBChunkHeader{ChunkLength: uint32(len(jsonData)), ChunkType: gltfGLBChunkJSON},
		jsonData,
		gltfGLBChunkHeader{ChunkLength: uint32(len(payload)), ChunkType: gltfGLBChunkBIN},
		payload,
	} {
		if err := binary.Write(&out, binary.LittleEndian, v); err != nil {
			t.Fatalf("write glb: %v", err)
		}
	}
	return out.Bytes()
}

func checkGLTFModel(t *testing.T, m model.Model) {
	t.Helper()

	skel := m.Skeleton()
	if skel == nil || len(skel.Bones) != 2 {
		t.Fatalf("expected a two-bone skeleton, got %+v", skel)
	}
	if skel.Bones[0].Name != "Hips" || skel.Bones[1].Name != "Spine" || skel.Bones[1].ParentIndex != 0 {
		t.Fatalf("unexpected bones %+v", skel.Bones)
	}
	if skel.Bones[1].InverseBindMatrix[13] != -7 {
		t.Fatalf("stored inverse bind matrix must win, got %v", skel.Bones[1].InverseBindMatrix)
	}

	wantKeys := []model.TextKey{
		{Time: 0, Label: "Walk: start"},
		{Time: 0, Label: "Walk: loop start"},
		{Time: 1, Label: "Walk: loop stop"},
		{Time: 1, Label: "Walk: stop"},
		{Time: 2, Label: "Idle: start"},
		{Time: 2, Label: "Idle: loop start"},
		{Time: 2.5, Label: "Idle: loop stop"},
		{Time: 2.5, Label: "Idle: stop"},
	}
	keys := m.TextKeys()
	if m.TextKeyRoot() != "Hips" || len(keys) != len(wantKeys) {
		t.Fatalf("unexpected text keys on %q: %v", m.TextKeyRoot(), keys)
	}
	for i, k := range wantKeys {
		if keys[i] != k {
			t.Fatalf("key %d = %+v, want %+v", i, keys[i], k)
		}
	}

	channels := m.Channels()
	if len(channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(channels))
	}
	hips, spine := channels[0], channels[1]
	if hips.BoneName != "Hips" || hips.BoneIndex != 0 || len(hips.PositionKeys) != 4 || len(hips.RotationKeys) != 0 {
		t.Fatalf("unexpected Hips channel %+v", hips)
	}
	if spine.BoneName != "Spine" || len(spine.RotationKeys) != 4 || len(spine.PositionKeys) != 0 {
		t.Fatalf("unexpected Spine channel %+v", spine)
	}

	cases := []struct {
		name string
		time float32
		z    float32
	}{
		{"walk_midpoint", 0.5, 1},
		{"walk_end", 1, 2},
		{"idle_holds_bind_pose", 2.25, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, ok := hips.Translation(c.time)
			if !ok || math.Abs(float64(p[2]-c.z)) > 1e-5 {
				t.Fatalf("Hips translation at %v = %v, want z %v", c.time, p, c.z)
			}
		})
	}
	if q, _ := spine.Rotation(0.5); math.Abs(float64(q[3]-1)) > 1e-5 {
		t.Fatalf("Spine must hold its bind rotation during Walk, got %v", q)
	}

	rs := m.Renderables()
	if len(rs) != 1 || rs[0].Name != "Body" || rs[0].Bone != "Spine" {
		t.Fatalf("unexpected renderables %+v", rs)
	}
}

func TestGLTFBackendEmbeddedBuffer(t *testing.T) {
	doc, payload := testGLTF(t)
	m, err := newGLTFLoaderBackend().LoadReader("actor", bytes.NewReader(embedded(t, doc, payload)))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if m.Name() != "actor" {
		t.Fatalf("Name() = %q", m.Name())
	}
	checkGLTFModel(t, m)
}

func TestGLTFBackendBinary(t *testing.T) {
	doc, payload := testGLTF(t)
	m, err := newGLTFLoaderBackend().LoadReader("actor", bytes.NewReader(glb(t, doc, payload)))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	checkGLTFModel(t, m)
}

func TestGLTFLoaderResolvesFiles(t *testing.T) {
	dir := t.TempDir()
	doc, payload := testGLTF(t)
	writeFile(t, dir, "actor.glb", string(glb(t, doc, payload)))

	l := NewLoader(BackendTypeGLTF, WithDirectory(dir), WithLogger(quietLogger()))
	m, err := l.LoadObjects("actor", true)
	if err != nil {
		t.Fatalf("LoadObjects: %v", err)
	}
	if !m.BaseOnly() || len(m.Renderables()) != 0 || !m.TextKeys().HasGroup("Idle") {
		t.Fatalf("unexpected base-only model")
	}
	if _, err := l.LoadObjects("missing", false); !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("expected ErrModelNotFound, got %v", err)
	}
}

func TestGLTFBackendErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(doc *gltfDocument)
		want   string
	}{
		{"version", func(doc *gltfDocument) { doc.Asset.Version = "1.0" }, "version"},
		{"cubic_spline", func(doc *gltfDocument) { doc.Animations[0].Samplers[0].Interpolation = "CUBICSPLINE" }, "cubic spline"},
		{"wrong_accessor_type", func(doc *gltfDocument) { doc.Animations[0].Samplers[0].Output = 3 }, "not VEC3"},
		{"bad_joint", func(doc *gltfDocument) { doc.Skins[0].Joints = []int{0, 9} }, "invalid node index"},
		{"short_buffer", func(doc *gltfDocument) { doc.Accessors[4].Count = 3 }, "buffer size mismatch"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc, payload := testGLTF(t)
			c.mutate(doc)
			_, err := newGLTFLoaderBackend().LoadReader("actor", bytes.NewReader(embedded(t, doc, payload)))
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected error containing %q, got %v", c.want, err)
			}
		})
	}
}

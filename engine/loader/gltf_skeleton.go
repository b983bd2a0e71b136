package loader

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-actor/engine/model"
)

// gltfJoints maps the node indices of the first skin's joints to bone names.
// Documents without a skin yield an empty map.
func gltfJoints(doc *gltfDocument) (map[int]string, error) {
	joints := make(map[int]string)
	if len(doc.Skins) == 0 {
		return joints, nil
	}
	for i, node := range doc.Skins[0].Joints {
		if node < 0 || node >= len(doc.Nodes) {
			return nil, fmt.Errorf("joint %d: invalid node index %d", i, node)
		}
		joints[node] = gltfNodeName(doc, node)
	}
	return joints, nil
}

// gltfNodeName returns the node's name, or a generated one for unnamed nodes.
func gltfNodeName(doc *gltfDocument, node int) string {
	if name := doc.Nodes[node].Name; name != "" {
		return name
	}
	return fmt.Sprintf("node_%d", node)
}

// gltfParents maps every child node index to its parent node index.
func gltfParents(doc *gltfDocument) map[int]int {
	parents := make(map[int]int)
	for i, node := range doc.Nodes {
		for _, child := range node.Children {
			parents[child] = i
		}
	}
	return parents
}

// gltfSkeleton builds the first skin's joint hierarchy. A joint whose parent node is not
// itself a joint becomes a root. Inverse bind matrices stored in the skin replace the ones
// derived from the bind pose.
func gltfSkeleton(p *gltfParser, joints map[int]string, parents map[int]int) (*model.Skeleton, error) {
	doc := p.document
	if len(doc.Skins) == 0 {
		return nil, nil
	}
	skin := &doc.Skins[0]

	descs := make([]boneDesc, len(skin.Joints))
	for i, node := range skin.Joints {
		local := gltfNodeTransform(&doc.Nodes[node])
		descs[i] = boneDesc{
			Name:        joints[node],
			Translation: local.Translation,
			Rotation:    &local.Rotation,
			Scale:       &local.Scale,
		}
		if parent, ok := parents[node]; ok {
			descs[i].Parent = joints[parent]
		}
	}

	skel, err := buildSkeleton(descs)
	if err != nil {
		return nil, err
	}

	if skin.InverseBindMatrices != nil {
		ibms, err := readAccessor[[16]float32](p, *skin.InverseBindMatrices, gltfAccessorTypeMat4, 16)
		if err != nil {
			return nil, fmt.Errorf("inverse bind matrices: %w", err)
		}
		for i, node := range skin.Joints {
			if i >= len(ibms) {
				break
			}
			if idx, ok := skel.BoneIndex(joints[node]); ok {
				skel.Bones[idx].InverseBindMatrix = ibms[i]
			}
		}
	}
	return skel, nil
}

// gltfNodeTransform extracts the TRS local transform of a node.
func gltfNodeTransform(node *gltfNode) model.Transform {
	if node.Matrix != nil {
		return gltfDecomposeMatrix(*node.Matrix)
	}
	t := model.IdentityTransform()
	if node.Translation != nil {
		t.Translation = *node.Translation
	}
	if node.Rotation != nil {
		t.Rotation = *node.Rotation
	}
	if node.Scale != nil {
		t.Scale = *node.Scale
	}
	return t
}

// gltfDecomposeMatrix decomposes a column-major matrix without shear into TRS.
func gltfDecomposeMatrix(m [16]float32) model.Transform {
	var t model.Transform
	t.Translation = [3]float32{m[12], m[13], m[14]}

	var scale [3]float32
	for c := range 3 {
		x, y, z := m[c*4], m[c*4+1], m[c*4+2]
		scale[c] = float32(math.Sqrt(float64(x*x + y*y + z*z)))
	}
	t.Scale = scale
	for c := range scale {
		if scale[c] < 0.0001 {
			scale[c] = 1
		}
	}

	// rotation matrix, r[row][col]
	var r [3][3]float32
	for c := range 3 {
		for row := range 3 {
			r[row][c] = m[c*4+row] / scale[c]
		}
	}
	t.Rotation = gltfMatrixToQuaternion(r)
	return t
}

// gltfMatrixToQuaternion converts a rotation matrix to a quaternion (x, y, z, w).
func gltfMatrixToQuaternion(r [3][3]float32) [4]float32 {
	trace := r[0][0] + r[1][1] + r[2][2]
	switch {
	case trace > 0:
		s := float32(math.Sqrt(float64(trace+1))) * 2
		return [4]float32{(r[2][1] - r[1][2]) / s, (r[0][2] - r[2][0]) / s, (r[1][0] - r[0][1]) / s, 0.25 * s}
	case r[0][0] > r[1][1] && r[0][0] > r[2][2]:
		s := float32(math.Sqrt(float64(1+r[0][0]-r[1][1]-r[2][2]))) * 2
		return [4]float32{0.25 * s, (r[0][1] + r[1][0]) / s, (r[0][2] + r[2][0]) / s, (r[2][1] - r[1][2]) / s}
	case r[1][1] > r[2][2]:
		s := float32(math.Sqrt(float64(1+r[1][1]-r[0][0]-r[2][2]))) * 2
		return [4]float32{(r[0][1] + r[1][0]) / s, 0.25 * s, (r[1][2] + r[2][1]) / s, (r[0][2] - r[2][0]) / s}
	default:
		s := float32(math.Sqrt(float64(1+r[2][2]-r[0][0]-r[1][1]))) * 2
		return [4]float32{(r[0][2] + r[2][0]) / s, (r[1][2] + r[2][1]) / s, 0.25 * s, (r[1][0] - r[0][1]) / s}
	}
}

package linear

// TransformPoint returns m . (p, 1), dropping back to three components.
func TransformPoint(m *M4, p V3) V3 {
	var v, r V4
	v = V4{p[0], p[1], p[2], 1}
	r.Mul(m, &v)
	if r[3] != 0 && r[3] != 1 {
		inv := 1 / r[3]
		return V3{r[0] * inv, r[1] * inv, r[2] * inv}
	}
	return V3{r[0], r[1], r[2]}
}

// TransformDirection returns m . (d, 0), dropping back to three
// components. Translation is not applied.
func TransformDirection(m *M4, d V3) V3 {
	var v, r V4
	v = V4{d[0], d[1], d[2], 0}
	r.Mul(m, &v)
	return V3{r[0], r[1], r[2]}
}

// TransformNormal transforms the normal n by the inverse transpose of
// m (the model-to-world matrix) and renormalizes, per spec.md §4.5
// step 4. It is the caller's responsibility to invert m once and
// reuse it across many normals.
func TransformNormal(invTranspose *M4, n V3) V3 {
	return NormV3(TransformDirection(invTranspose, n))
}

// InvertTranspose computes the inverse transpose of m, for use with
// TransformNormal.
func InvertTranspose(m *M4) M4 {
	var inv, out M4
	inv.Invert(m)
	out.Transpose(&inv)
	return out
}

package param

import (
	"fmt"

	"autoparam/internal/diagnostic"
)

// Scan returns the annotations declared on d, in declaration order.
func Scan(d Descriptor) []Annotation {
	if len(d.Annotations) == 0 {
		return nil
	}

	out := make([]Annotation, 0, len(d.Annotations))
	for _, a := range d.Annotations {
		if a != nil {
			out = append(out, a)
		}
	}

	return out
}

// Order stably moves freezing annotations after all others.
func Order(as []Annotation) []Annotation {
	out := make([]Annotation, 0, len(as))

	var frozen []Annotation
	for _, a := range as {
		if IsFreeze(a) {
			frozen = append(frozen, a)
			continue
		}

		out = append(out, a)
	}

	return append(out, frozen...)
}

// Validate checks every descriptor and annotation that can be checked
// without resolving values. All problems are reported together.
func Validate(ds []Descriptor) error {
	diags := Diagnose(ds)
	return diags.Error()
}

// Diagnose is Validate keeping the warnings: annotations that are accepted
// but can never take effect on their parameter.
func Diagnose(ds []Descriptor) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for _, d := range ds {
		if d.Type == nil {
			diags.AddError("nil_type", "parameter type is nil", d.Func, paramRef(d))
			continue
		}

		for _, a := range Scan(d) {
			if v, ok := a.(Validator); ok {
				if err := v.Validate(d); err != nil {
					diags.AddError("invalid_annotation", err.Error(), d.Func, paramRef(d))
					continue
				}
			}

			if w, ok := a.(Warner); ok {
				if msg := w.Warning(d); msg != "" {
					diags.AddWarning("ineffective_annotation", msg, d.Func, paramRef(d))
				}
			}
		}
	}

	return diags
}

func paramRef(d Descriptor) string {
	if d.Name != "" {
		return d.Name
	}

	return fmt.Sprintf("#%d", d.Position)
}

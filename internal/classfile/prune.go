package classfile

// Prune drops debugging tables from every method body. It reports whether
// anything was removed.
func (cf *ClassFile) Prune() (bool, error) {
	changed := false

	for _, m := range cf.Methods {
		attr := cf.FindAttribute(m.Attributes, AttrCode)
		if attr == nil {
			continue
		}

		body, err := splitCode(attr.Info)
		if err != nil {
			return changed, err
		}

		before := len(body.attrs)
		body.attrs = cf.RemoveAttributes(body.attrs, AttrLineNumberTable, AttrLocalVariableTable, AttrLocalVariableTypeTable)

		if len(body.attrs) != before {
			attr.Info = body.join()
			changed = true
		}
	}

	return changed, nil
}

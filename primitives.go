package forth

// Primitive registry (C3). A static table of (name, routine, flags)
// seeded once at New: for each entry a header is created and exactly one
// Cell — the primitive's own index into this table — is compiled as its
// code field. That index doubles as the primitive's XT: the inner loop
// treats any compiled value less than len(vm.primitives) as a direct
// primitive invocation and anything else as a colon word's code-field
// address (see inner.go). This only holds because every primitive is
// seeded before any user word is ever created, so the first colon word's
// CFA always lands past the end of the primitive table — seedPrimitives
// asserts dictionary capacity is sufficient for that to be true.
//
// Table order fixes search tie-breaks (later entries shadow earlier
// ones), though no two primitives here share a name.
const (
	xtEXIT Cell = iota
	xtDOCOL
	xtLIT
	xtBRANCH
	xtZBRANCH

	xtDROP
	xtDUP
	xtSWAP
	xtROT
	xtOVER
	xtDOTS
	xtDOT

	xtADD
	xtSUB
	xtMUL
	xtDIV
	xtMOD
	xtINC
	xtDEC

	xtEQ
	xtLT
	xtGT
	xtZEQ

	xtFETCH
	xtSTORE
	xtCFETCH
	xtCSTORE

	xtCREATE
	xtCOMMA
	xtCOLON
	xtSEMI
	xtTICK
	xtIMMEDIATE
	xtHIDDEN
	xtLBRAC
	xtRBRAC
	xtLATESTF
	xtHERE

	xt2CFA
	xt2DFA

	xtWORD
	xtKEY
	xtEMIT

	xtSEE
	xtWORDS
	xtFIND
)

// primitive is one entry of the seeded table: a name, its routine, and
// the flags it is seeded with.
type primitive struct {
	name      string
	fn        func(vm *VM)
	immediate bool
	hidden    bool
}

// primitiveTable returns the fixed seed table, indexed by the xt*
// constants above — primitiveTable()[xtDUP].name == "DUP", etc.
func primitiveTable() []primitive {
	return []primitive{
		xtEXIT:      {"EXIT", opEXIT, false, false},
		xtDOCOL:     {"DOCOL", opDOCOL, false, true},
		xtLIT:       {"LIT", opLIT, false, true},
		xtBRANCH:    {"BRANCH", opBRANCH, false, false},
		xtZBRANCH:   {"0BRANCH", opZBRANCH, false, false},

		xtDROP: {"DROP", opDROP, false, false},
		xtDUP:  {"DUP", opDUP, false, false},
		xtSWAP: {"SWAP", opSWAP, false, false},
		xtROT:  {"ROT", opROT, false, false},
		xtOVER: {"OVER", opOVER, false, false},
		xtDOTS: {".S", opDOTS, false, false},
		xtDOT:  {".", opDOT, false, false},

		xtADD: {"+", opADD, false, false},
		xtSUB: {"-", opSUB, false, false},
		xtMUL: {"*", opMUL, false, false},
		xtDIV: {"/", opDIV, false, false},
		xtMOD: {"MOD", opMOD, false, false},
		xtINC: {"1+", opINC, false, false},
		xtDEC: {"1-", opDEC, false, false},

		xtEQ:  {"=", opEQ, false, false},
		xtLT:  {"<", opLT, false, false},
		xtGT:  {">", opGT, false, false},
		xtZEQ: {"0=", opZEQ, false, false},

		xtFETCH:  {"@", opFETCH, false, false},
		xtSTORE:  {"!", opSTORE, false, false},
		xtCFETCH: {"C@", opCFETCH, false, false},
		xtCSTORE: {"C!", opCSTORE, false, false},

		xtCREATE:    {"CREATE", opCREATE, false, false},
		xtCOMMA:     {",", opCOMMA, false, false},
		xtCOLON:     {":", opCOLON, false, false},
		xtSEMI:      {";", opSEMI, true, false},
		xtTICK:      {"'", opTICK, false, false},
		xtIMMEDIATE: {"IMMEDIATE", opIMMEDIATE, true, false},
		xtHIDDEN:    {"HIDDEN", opHIDDEN, false, false},
		xtLBRAC:     {"[", opLBRAC, true, false},
		xtRBRAC:     {"]", opRBRAC, false, false},
		xtLATESTF:   {"LATEST_F", opLATESTF, false, false},
		xtHERE:      {"HERE", opHERE, false, false},

		xt2CFA: {"2CFA", op2CFA, false, false},
		xt2DFA: {"2DFA", op2DFA, false, false},

		xtWORD: {"WORD", opWORD, false, false},
		xtKEY:  {"KEY", opKEY, false, false},
		xtEMIT: {"EMIT", opEMIT, false, false},

		xtSEE:   {"SEE", opSEE, false, false},
		xtWORDS: {"WORDS", opWORDS, false, false},
		xtFIND:  {"FIND", opFIND, false, false},
	}
}

// seedPrimitives builds the primitive table and creates one dictionary
// header per entry, in table order, with the entry's own index compiled
// as its code field.
func (vm *VM) seedPrimitives() error {
	vm.primitives = primitiveTable()
	for i, p := range vm.primitives {
		h, err := vm.create([]byte(p.name))
		if err != nil {
			return err
		}
		if err := vm.compileCell(Cell(i)); err != nil {
			return err
		}
		if p.hidden {
			vm.toggleHidden(h)
		}
		if p.immediate {
			vm.toggleImmediate(h)
		}
	}
	return nil
}

package aig

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformed is wrapped around any AIGER parse failure.
var ErrMalformed = errors.New("malformed AIGER input")

// ErrOutOfRange is wrapped around a literal that references a node outside
// [0, 2*M+1].
var ErrOutOfRange = errors.New("AIGER literal out of range")

type header struct {
	maxVar      int
	numInputs   int
	numLatchs   int
	numOutputs  int
	numAnds     int
	numBads     int
	numConstrs  int
	numJustice  int
	numFairness int
}

// FromFile reads an AIGER file (ASCII "aag" or binary "aig") from path.
func FromFile(path string) (*Aig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	a, err := FromReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return a, nil
}

// FromReader parses an AIGER stream in either ASCII or binary form.
func FromReader(r io.Reader) (*Aig, error) {
	br := bufio.NewReader(r)
	line, err := readLine(br)
	if err != nil {
		return nil, errors.Wrap(err, "reading header line")
	}
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return nil, errors.Wrapf(ErrMalformed, "short header %q", line)
	}
	var h header
	var ascii bool
	switch fields[0] {
	case "aag":
		ascii = true
	case "aig":
		ascii = false
	default:
		return nil, errors.Wrapf(ErrMalformed, "unrecognized header tag %q", fields[0])
	}
	ints := make([]int, 0, len(fields)-1)
	for _, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "bad header field %q", f)
		}
		ints = append(ints, n)
	}
	for len(ints) < 7 {
		ints = append(ints, 0)
	}
	h = header{
		maxVar:     ints[0],
		numInputs:  ints[1],
		numLatchs:  ints[2],
		numOutputs: ints[3],
		numAnds:    ints[4],
		numBads:    ints[5],
		numConstrs: ints[6],
	}
	if ascii {
		return parseASCII(br, h)
	}
	return parseBinary(br, h)
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func edgeFromLiteral(lit int, maxVar int) (Edge, error) {
	if lit < 0 || lit > 2*maxVar+1 {
		return Edge{}, errors.Wrapf(ErrOutOfRange, "literal %d (max var %d)", lit, maxVar)
	}
	return NewEdge(NodeID(lit/2), lit&1 != 0), nil
}

// parseASCII parses the "aag" textual format: every node's literal is given
// explicitly, one token/line per record, in declaration order (inputs,
// latches, outputs, bads, constraints, then AND gates as "lhs rhs0 rhs1").
func parseASCII(br *bufio.Reader, h header) (*Aig, error) {
	nodes := make([]Node, h.maxVar+1)
	nodes[0] = Node{ID: 0, Kind: KindFalse}

	readInt := func() (int, error) {
		line, err := readLine(br)
		if err != nil {
			return 0, err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return 0, errors.Wrap(ErrMalformed, "expected integer, got blank line")
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, errors.Wrapf(ErrMalformed, "expected integer, got %q", fields[0])
		}
		return n, nil
	}

	a := &Aig{Nodes: nodes}
	for i := 0; i < h.numInputs; i++ {
		lit, err := readInt()
		if err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
		id := NodeID(lit / 2)
		a.Nodes[id] = Node{ID: id, Kind: KindInput}
		a.Inputs = append(a.Inputs, id)
	}
	for i := 0; i < h.numLatchs; i++ {
		line, err := readLine(br)
		if err != nil {
			return nil, errors.Wrap(err, "reading latch")
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, errors.Wrapf(ErrMalformed, "bad latch line %q", line)
		}
		out, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "bad latch output %q", fields[0])
		}
		nextLit, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "bad latch next %q", fields[1])
		}
		next, err := edgeFromLiteral(nextLit, h.maxVar)
		if err != nil {
			return nil, err
		}
		id := NodeID(out / 2)
		var init *bool
		if len(fields) >= 3 {
			switch fields[2] {
			case "0":
				b := false
				init = &b
			case "1":
				b := true
				init = &b
			default:
				// "2" or the latch's own literal means "no constraint"; leave nil.
			}
		}
		a.Nodes[id] = Node{ID: id, Kind: KindLatch}
		a.Latchs = append(a.Latchs, Latch{Input: id, Next: next, Init: init})
	}
	for i := 0; i < h.numOutputs; i++ {
		lit, err := readInt()
		if err != nil {
			return nil, errors.Wrap(err, "reading output")
		}
		e, err := edgeFromLiteral(lit, h.maxVar)
		if err != nil {
			return nil, err
		}
		a.Outputs = append(a.Outputs, e)
	}
	for i := 0; i < h.numBads; i++ {
		lit, err := readInt()
		if err != nil {
			return nil, errors.Wrap(err, "reading bad")
		}
		e, err := edgeFromLiteral(lit, h.maxVar)
		if err != nil {
			return nil, err
		}
		a.Bads = append(a.Bads, e)
	}
	for i := 0; i < h.numConstrs; i++ {
		lit, err := readInt()
		if err != nil {
			return nil, errors.Wrap(err, "reading constraint")
		}
		e, err := edgeFromLiteral(lit, h.maxVar)
		if err != nil {
			return nil, err
		}
		a.Constraints = append(a.Constraints, e)
	}
	for i := 0; i < h.numAnds; i++ {
		line, err := readLine(br)
		if err != nil {
			return nil, errors.Wrap(err, "reading and gate")
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, errors.Wrapf(ErrMalformed, "bad and-gate line %q", line)
		}
		var lits [3]int
		for j, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformed, "bad and-gate literal %q", f)
			}
			lits[j] = n
		}
		id := NodeID(lits[0] / 2)
		fanin0, err := edgeFromLiteral(lits[1], h.maxVar)
		if err != nil {
			return nil, err
		}
		fanin1, err := edgeFromLiteral(lits[2], h.maxVar)
		if err != nil {
			return nil, err
		}
		a.Nodes[id] = Node{ID: id, Kind: KindAnd, Fanin0: fanin0, Fanin1: fanin1}
	}
	return a, nil
}

// parseBinary parses the "aig" binary format: latch lines (next literal
// and optional init, without the latch's own literal) and outputs/bads/
// constraints literals are decimal text (one per line), but input
// literals are *not* listed (they are implicitly 2,4,...,2*numInputs) and
// AND gates are delta-encoded.
func parseBinary(br *bufio.Reader, h header) (*Aig, error) {
	nodes := make([]Node, h.maxVar+1)
	nodes[0] = Node{ID: 0, Kind: KindFalse}
	a := &Aig{Nodes: nodes}

	for i := 0; i < h.numInputs; i++ {
		id := NodeID(i + 1)
		a.Nodes[id] = Node{ID: id, Kind: KindInput}
		a.Inputs = append(a.Inputs, id)
	}
	for i := 0; i < h.numLatchs; i++ {
		line, err := readLine(br)
		if err != nil {
			return nil, errors.Wrap(err, "reading latch")
		}
		fields := strings.Fields(line)
		if len(fields) < 1 {
			return nil, errors.Wrapf(ErrMalformed, "bad latch line %q", line)
		}
		nextLit, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "bad latch next %q", fields[0])
		}
		next, err := edgeFromLiteral(nextLit, h.maxVar)
		if err != nil {
			return nil, err
		}
		id := NodeID(h.numInputs + i + 1)
		var init *bool
		if len(fields) >= 2 {
			switch fields[1] {
			case "0":
				b := false
				init = &b
			case "1":
				b := true
				init = &b
			}
		}
		a.Nodes[id] = Node{ID: id, Kind: KindLatch}
		a.Latchs = append(a.Latchs, Latch{Input: id, Next: next, Init: init})
	}
	for i := 0; i < h.numOutputs; i++ {
		line, err := readLine(br)
		if err != nil {
			return nil, errors.Wrap(err, "reading output")
		}
		lit, err := strconv.Atoi(strings.Fields(line)[0])
		if err != nil {
			return nil, errors.Wrap(ErrMalformed, "bad output literal")
		}
		e, err := edgeFromLiteral(lit, h.maxVar)
		if err != nil {
			return nil, err
		}
		a.Outputs = append(a.Outputs, e)
	}
	for i := 0; i < h.numBads; i++ {
		line, err := readLine(br)
		if err != nil {
			return nil, errors.Wrap(err, "reading bad")
		}
		lit, err := strconv.Atoi(strings.Fields(line)[0])
		if err != nil {
			return nil, errors.Wrap(ErrMalformed, "bad bad-state literal")
		}
		e, err := edgeFromLiteral(lit, h.maxVar)
		if err != nil {
			return nil, err
		}
		a.Bads = append(a.Bads, e)
	}
	for i := 0; i < h.numConstrs; i++ {
		line, err := readLine(br)
		if err != nil {
			return nil, errors.Wrap(err, "reading constraint")
		}
		lit, err := strconv.Atoi(strings.Fields(line)[0])
		if err != nil {
			return nil, errors.Wrap(ErrMalformed, "bad constraint literal")
		}
		e, err := edgeFromLiteral(lit, h.maxVar)
		if err != nil {
			return nil, err
		}
		a.Constraints = append(a.Constraints, e)
	}
	firstAndVar := h.numInputs + h.numLatchs + 1
	for i := 0; i < h.numAnds; i++ {
		id := NodeID(firstAndVar + i)
		lhs := 2 * int(id)
		d0, err := readDelta(br)
		if err != nil {
			return nil, errors.Wrap(err, "reading and-gate delta 0")
		}
		d1, err := readDelta(br)
		if err != nil {
			return nil, errors.Wrap(err, "reading and-gate delta 1")
		}
		rhs0 := lhs - d0
		rhs1 := rhs0 - d1
		fanin0, err := edgeFromLiteral(rhs0, h.maxVar)
		if err != nil {
			return nil, err
		}
		fanin1, err := edgeFromLiteral(rhs1, h.maxVar)
		if err != nil {
			return nil, err
		}
		a.Nodes[id] = Node{ID: id, Kind: KindAnd, Fanin0: fanin0, Fanin1: fanin1}
	}
	return a, nil
}

// readDelta reads one AIGER variable-length-encoded unsigned integer: 7 bits
// per byte, little-endian base-128, continuation in the high bit.
func readDelta(br *bufio.Reader) (int, error) {
	var x uint64
	var shift uint
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		x |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
		if shift > 63 {
			return 0, errors.Wrap(ErrMalformed, "delta literal too long")
		}
	}
	return int(x), nil
}

// writeDelta is the inverse of readDelta, exposed for round-trip tests.
func writeDelta(w io.Writer, x uint64) error {
	buf := make([]byte, 0, 10)
	for x >= 0x80 {
		buf = append(buf, byte(x&0x7f)|0x80)
		x >>= 7
	}
	buf = append(buf, byte(x))
	_, err := w.Write(buf)
	return err
}

package constraint

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Cyber-Mitch/noir-backend-using-gnark/internal/ioutils"
)

const headerLen = 2 * 8

type header struct {
	calldataLen uint64
	bodyLen     uint64
}

func (h *header) toBytes() []byte {
	buf := make([]byte, 0, headerLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.calldataLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.bodyLen)
	return buf
}

func (h *header) fromBytes(buf []byte) {
	h.calldataLen = binary.LittleEndian.Uint64(buf[:8])
	h.bodyLen = binary.LittleEndian.Uint64(buf[8:16])
}

// ToBytes serializes the constraint system to a byte slice.
// Constraints and product instructions are packed as integer streams and
// compressed; the rest of the system is CBOR encoded.
func (cs *R1CS) ToBytes() ([]byte, error) {
	var calldata, body []byte
	var g errgroup.Group
	g.Go(func() error {
		var err error
		calldata, err = cs.calldataToBytes()
		return err
	})

	{
		// CBOR body
		var buf bytes.Buffer
		enc, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return nil, err
		}
		if err := enc.NewEncoder(&buf).Encode(cs); err != nil {
			return nil, err
		}
		body = buf.Bytes()
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	h := header{
		calldataLen: uint64(len(calldata)),
		bodyLen:     uint64(len(body)),
	}
	buf := h.toBytes()
	buf = append(buf, calldata...)
	buf = append(buf, body...)

	return buf, nil
}

// FromBytes deserializes the constraint system from a byte slice and returns
// the number of bytes read.
func (cs *R1CS) FromBytes(data []byte) (int, error) {
	if len(data) < headerLen {
		return 0, errors.New("invalid data length")
	}

	h := new(header)
	h.fromBytes(data)

	if uint64(len(data)) < headerLen+h.calldataLen+h.bodyLen {
		return 0, errors.New("invalid data length")
	}

	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecMode()
	if err != nil {
		return 0, err
	}
	decoder := dm.NewDecoder(bytes.NewReader(data[headerLen+h.calldataLen : headerLen+h.calldataLen+h.bodyLen]))
	if err := decoder.Decode(&cs); err != nil {
		return 0, err
	}

	if err := cs.CheckSerializationHeader(); err != nil {
		return 0, err
	}
	cs.rebuildIndex()

	if err := cs.calldataFromBytes(data[headerLen : headerLen+h.calldataLen]); err != nil {
		return 0, err
	}

	return headerLen + int(h.calldataLen) + int(h.bodyLen), nil
}

// WriteTo encodes R1CS into provided io.Writer
func (cs *R1CS) WriteTo(w io.Writer) (int64, error) {
	buf, err := cs.ToBytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// ReadFrom attempts to decode R1CS from io.Reader
func (cs *R1CS) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	n, err := cs.FromBytes(data)
	return int64(n), err
}

// calldata layout, before compression:
// [nbConstraints, (L, R, O)*, nbProducts, (x, y, z)*]
// where each linear expression is [len, (cID, vID)*]
func (cs *R1CS) packCalldata() []uint32 {
	calldata := make([]uint32, 0, len(cs.Constraints)*12)
	calldata = append(calldata, uint32(len(cs.Constraints)))
	for i := range cs.Constraints {
		cs.Constraints[i].Compress(&calldata)
	}
	calldata = append(calldata, uint32(len(cs.Products)))
	for _, p := range cs.Products {
		calldata = append(calldata, p.X, p.Y, p.Z)
	}
	return calldata
}

func (cs *R1CS) calldataToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := ioutils.CompressAndWriteUints32(&buf, cs.packCalldata(), nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (cs *R1CS) calldataFromBytes(data []byte) error {
	_, calldata, err := ioutils.ReadAndDecompressUints32(bytes.NewReader(data))
	if err != nil {
		return err
	}

	next := func() (uint32, error) {
		if len(calldata) == 0 {
			return 0, errors.New("corrupted calldata section")
		}
		v := calldata[0]
		calldata = calldata[1:]
		return v, nil
	}
	readLinearExpression := func() (LinearExpression, error) {
		n, err := next()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			// empty expressions are stored as nil, keep round trips exact
			return nil, nil
		}
		l := make(LinearExpression, n)
		for i := range l {
			if l[i].CID, err = next(); err != nil {
				return nil, err
			}
			if l[i].VID, err = next(); err != nil {
				return nil, err
			}
			if int(l[i].CID) >= len(cs.Coefficients) {
				return nil, fmt.Errorf("coefficient id %d out of range", l[i].CID)
			}
			if int(l[i].VID) >= cs.GetNbWires() {
				return nil, fmt.Errorf("wire id %d out of range", l[i].VID)
			}
		}
		return l, nil
	}

	nbConstraints, err := next()
	if err != nil {
		return err
	}
	cs.Constraints = make([]R1C, nbConstraints)
	for i := range cs.Constraints {
		if cs.Constraints[i].L, err = readLinearExpression(); err != nil {
			return err
		}
		if cs.Constraints[i].R, err = readLinearExpression(); err != nil {
			return err
		}
		if cs.Constraints[i].O, err = readLinearExpression(); err != nil {
			return err
		}
	}

	nbProducts, err := next()
	if err != nil {
		return err
	}
	cs.Products = make([]Product, nbProducts)
	for i := range cs.Products {
		if cs.Products[i].X, err = next(); err != nil {
			return err
		}
		if cs.Products[i].Y, err = next(); err != nil {
			return err
		}
		if cs.Products[i].Z, err = next(); err != nil {
			return err
		}
	}
	if len(calldata) != 0 {
		return errors.New("corrupted calldata section")
	}

	return nil
}

package rw

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// ReaderWriter reads and writes fixed size little endian values. The first
// read error is kept and every later read returns zero values; check Err
// once after a batch of reads.
type ReaderWriter struct {
	order   binary.ByteOrder
	dataBuf []byte
	rw      bytes.Buffer
	err     error
}

func NewBinWriter() *ReaderWriter {
	return &ReaderWriter{order: binary.LittleEndian, dataBuf: make([]byte, 8)}
}

func NewBinReader(data []byte) *ReaderWriter {
	d := &ReaderWriter{order: binary.LittleEndian, dataBuf: make([]byte, 8)}
	d.rw.Write(data)
	return d
}

func (w *ReaderWriter) Err() error {
	return w.err
}

func (w *ReaderWriter) read(n int) []byte {
	if w.err != nil {
		return nil
	}
	_, err := io.ReadFull(&w.rw, w.dataBuf[:n])
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		w.err = err
		return nil
	}
	return w.dataBuf[:n]
}

func (w *ReaderWriter) ReadUInt16() uint16 {
	b := w.read(2)
	if b == nil {
		return 0
	}
	return w.order.Uint16(b)
}

func (w *ReaderWriter) ReadUInt32() uint32 {
	b := w.read(4)
	if b == nil {
		return 0
	}
	return w.order.Uint32(b)
}

func (w *ReaderWriter) ReadFloat32() float32 {
	return math.Float32frombits(w.ReadUInt32())
}

func (w *ReaderWriter) ReadFloat32s(value []float32) {
	for i := range value {
		value[i] = w.ReadFloat32()
	}
}

func (w *ReaderWriter) WriteUInt16(value uint16) {
	w.order.PutUint16(w.dataBuf, value)
	w.rw.Write(w.dataBuf[:2])
}

func (w *ReaderWriter) WriteUInt32(value uint32) {
	w.order.PutUint32(w.dataBuf, value)
	w.rw.Write(w.dataBuf[:4])
}

func (w *ReaderWriter) WriteFloat32(v interface{}) {
	switch value := v.(type) {
	case float32:
		w.order.PutUint32(w.dataBuf, math.Float32bits(value))
	case float64:
		w.order.PutUint32(w.dataBuf, math.Float32bits(float32(value)))
	default:
		panic("not impl")
	}
	w.rw.Write(w.dataBuf[:4])
}

func (w *ReaderWriter) WriteFloat32s(v interface{}) {
	switch value := v.(type) {
	case []float32:
		for _, tmp := range value {
			w.WriteFloat32(tmp)
		}
	case []float64:
		for _, tmp := range value {
			w.WriteFloat32(float32(tmp))
		}
	default:
		panic("not impl")
	}
}

func (w *ReaderWriter) Skip(size int) {
	if w.err != nil {
		return
	}
	if w.rw.Len() < size {
		w.err = io.ErrUnexpectedEOF
		return
	}
	w.rw.Next(size)
}

func (w *ReaderWriter) WriteBytes(b []byte) {
	w.rw.Write(b)
}

func (w *ReaderWriter) PadZero(n int) {
	for i := 0; i < n; i++ {
		w.rw.WriteByte(0)
	}
}

func (w *ReaderWriter) GetWriteBytes() (res []byte) {
	return w.rw.Bytes()
}

func (w *ReaderWriter) ChangeOrder(order binary.ByteOrder) {
	w.order = order
}

func (w *ReaderWriter) Size() int {
	return w.rw.Len()
}

package slippi

// DataRecord is the transposed (Pre, Post) pair for one leader or follower
// slot at a single row.
type DataRecord struct {
	Pre  PreRecord
	Post PostRecord
}

// PortDataRecord is the transposed view of one port at a single row.
type PortDataRecord struct {
	Port     Port
	Leader   DataRecord
	Follower *DataRecord
}

// FrameStartRecord is the transposed FrameStart column.
type FrameStartRecord struct {
	RandomSeed         uint32
	SceneFrameCounter *uint32
}

// FrameEndRecord is the transposed FrameEnd column.
type FrameEndRecord struct {
	LatestFinalizedFrame *int32
}

// FrameRecord is a single frame row materialized as a nested record, for
// test assertions or per-frame iteration.
type FrameRecord struct {
	ID    int32
	Ports []PortDataRecord
	Start *FrameStartRecord
	End   *FrameEndRecord
	Items []ItemRecord
}

// Transpose materializes row i of Frames as a nested record.
func (f *Frames) Transpose(i int) FrameRecord {
	id, _ := f.id.get(i)
	rec := FrameRecord{ID: id}

	for _, pd := range f.ports {
		pdr := PortDataRecord{
			Port: pd.port,
			Leader: DataRecord{
				Pre:  pd.leader.pre.transposeOne(i),
				Post: pd.leader.post.transposeOne(i),
			},
		}
		if pd.follower != nil {
			_, valid := pd.follower.pre.state.get(i)
			if valid {
				pdr.Follower = &DataRecord{
					Pre:  pd.follower.pre.transposeOne(i),
					Post: pd.follower.post.transposeOne(i),
				}
			}
		}
		rec.Ports = append(rec.Ports, pdr)
	}

	if f.start != nil {
		sr := &FrameStartRecord{}
		sr.RandomSeed, _ = f.start.randomSeed.get(i)
		if f.start.hasSceneFrameCounter {
			v, _ := f.start.sceneFrameCounter.get(i)
			sr.SceneFrameCounter = &v
		}
		rec.Start = sr
	}

	if f.end != nil {
		er := &FrameEndRecord{}
		if f.end.hasLatestFinalizedFrame {
			v, _ := f.end.latestFinalizedFrame.get(i)
			er.LatestFinalizedFrame = &v
		}
		rec.End = er
	}

	if f.items != nil {
		start, end := f.itemOffsets[i], f.itemOffsets[i+1]
		for j := start; j < end; j++ {
			rec.Items = append(rec.Items, f.items.transposeOne(int(j)))
		}
	}

	return rec
}
